package spec

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"auto-collection-gen/internal/types"

	"gopkg.in/yaml.v3"
)

// methodOrder is the canonical verb order used within a path item. The parsed
// document keeps operations in a map, so per-path method order is fixed here.
var methodOrder = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS", "TRACE"}

var paramPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Enumerate flattens the document's path/method matrix into a flat ordered
// sequence of endpoints. Paths follow the document's own order; parameter
// placeholders are rewritten from "{name}" to ":name" and methods are
// upper-cased. Returns ErrEmptySpec when the document declares no operations.
func Enumerate(d *Document) ([]types.Endpoint, error) {
	var endpoints []types.Endpoint
	for _, path := range d.pathOrder() {
		item := d.doc.Paths.Value(path)
		if item == nil {
			continue
		}
		for _, method := range methodOrder {
			if item.GetOperation(method) == nil {
				continue
			}
			endpoints = append(endpoints, types.Endpoint{
				Path:   NormalizePath(path),
				Method: method,
			})
		}
	}
	if len(endpoints) == 0 {
		return nil, ErrEmptySpec
	}
	return endpoints, nil
}

// NormalizePath rewrites OpenAPI parameter placeholders ("{id}") to the
// colon convention (":id").
func NormalizePath(path string) string {
	return paramPattern.ReplaceAllString(path, ":$1")
}

// pathOrder returns the document's paths in declaration order, recovered from
// the raw bytes: JSON sources are token-scanned, YAML sources walked through
// the yaml node tree. The parsed document cannot serve here because its paths
// live in a map that loses key order.
func (d *Document) pathOrder() []string {
	if order, ok := jsonPathOrder(d.raw); ok {
		return order
	}
	order, _ := yamlPathOrder(d.raw)
	return order
}

func jsonPathOrder(raw []byte) ([]string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}
		if key != "paths" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, false
			}
			continue
		}
		if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
			return nil, false
		}
		var order []string
		for dec.More() {
			pathTok, err := dec.Token()
			if err != nil {
				return nil, false
			}
			path, ok := pathTok.(string)
			if !ok {
				return nil, false
			}
			// Specification extensions can sit next to paths
			if !strings.HasPrefix(path, "x-") {
				order = append(order, path)
			}
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, false
			}
		}
		return order, true
	}
	return nil, false
}

// yamlPathOrder recovers path declaration order from a YAML source. A yaml
// mapping node lists its key/value pairs in document order, alternating in
// Content.
func yamlPathOrder(raw []byte) ([]string, bool) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, false
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, false
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "paths" {
			continue
		}
		paths := doc.Content[i+1]
		if paths.Kind != yaml.MappingNode {
			return nil, false
		}
		var order []string
		for j := 0; j+1 < len(paths.Content); j += 2 {
			// Specification extensions can sit next to paths
			if key := paths.Content[j].Value; !strings.HasPrefix(key, "x-") {
				order = append(order, key)
			}
		}
		return order, true
	}
	return nil, false
}
