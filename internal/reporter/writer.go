package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"auto-collection-gen/internal/collection"
)

// Writer handles persisting the finalized collection artifact
type Writer struct {
	outputDir string
}

// NewWriter creates a new instance of Writer
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// Save writes the collection as a JSON document keyed by provider identity,
// overwriting any previous run for that provider. Returns the artifact path.
func (w *Writer) Save(provider string, col *collection.Collection) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %v", err)
	}

	payload := struct {
		Collection *collection.Collection `json:"collection"`
	}{Collection: col}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal collection: %v", err)
	}

	path := filepath.Join(w.outputDir, fmt.Sprintf("%s_collection.json", provider))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write collection file: %v", err)
	}

	return path, nil
}
