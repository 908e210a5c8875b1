package spec

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"auto-collection-gen/internal/logger"

	"github.com/getkin/kin-openapi/openapi3"
)

// Document is a loaded OpenAPI document. It keeps the raw bytes alongside the
// parsed form because path enumeration needs the document's own key order,
// which the parsed representation does not preserve.
type Document struct {
	doc *openapi3.T
	raw []byte
}

// Raw returns the raw bytes the document was parsed from.
func (d *Document) Raw() []byte {
	return d.raw
}

// Loader handles loading of Swagger/OpenAPI specifications from a local file
// or a remote URL.
type Loader struct {
	source string
	client *http.Client
	logger logger.Logger
}

// NewLoader creates a new instance of Loader
func NewLoader(source string, log logger.Logger) *Loader {
	return &Loader{
		source: source,
		client: &http.Client{},
		logger: log,
	}
}

// Load fetches and parses the OpenAPI document from the configured source.
func (l *Loader) Load(ctx context.Context) (*Document, error) {
	if strings.Contains(l.source, "://") {
		return l.loadRemote(ctx)
	}
	return l.loadFile()
}

func (l *Loader) loadFile() (*Document, error) {
	data, err := os.ReadFile(l.source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, l.source)
		}
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return Parse(data)
}

func (l *Loader) loadRemote(ctx context.Context) (*Document, error) {
	var lastErr error
	for _, url := range l.candidateURLs() {
		l.logger.Debug(ctx, "fetching OpenAPI documentation", map[string]interface{}{
			"url": url,
		})
		doc, err := l.fetch(ctx, url)
		if err == nil {
			l.logger.Info(ctx, "fetched OpenAPI documentation", map[string]interface{}{
				"url": url,
			})
			return doc, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: no known URL served a spec, last error: %v", ErrNotFound, lastErr)
}

// candidateURLs returns the URLs to probe for a spec document. A source that
// already names a document is used as-is; a bare base URL is expanded to the
// well-known swagger.json locations.
func (l *Loader) candidateURLs() []string {
	trimmed := strings.TrimRight(l.source, "/")
	lower := strings.ToLower(trimmed)
	if strings.HasSuffix(lower, ".json") || strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return []string{l.source}
	}
	return []string{
		trimmed + "/swagger/v1/swagger.json",
		trimmed + "/swagger.json",
		trimmed + "/v1/swagger.json",
		trimmed + "/api/swagger.json",
		trimmed + "/api/v1/swagger.json",
		trimmed + "/openapi.json",
	}
}

func (l *Loader) fetch(ctx context.Context, url string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	return Parse(body)
}

// Parse parses raw bytes into a Document.
func Parse(data []byte) (*Document, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc.Paths == nil {
		return nil, fmt.Errorf("%w: document has no paths object", ErrParse)
	}
	return &Document{doc: doc, raw: data}, nil
}
