package collection

import (
	"fmt"
	"strings"

	"auto-collection-gen/internal/types"

	"github.com/google/uuid"
)

// Assembler accumulates collection items in input order. It never reorders or
// deduplicates.
type Assembler struct {
	collection Collection
}

// NewAssembler creates a new assembler for a named collection
func NewAssembler(name string) *Assembler {
	return &Assembler{
		collection: Collection{
			Info: Info{
				PostmanID: uuid.NewString(),
				Name:      name,
				Schema:    SchemaVersion,
			},
			Item: []Item{},
		},
	}
}

// Append converts the endpoint and test case into a collection item and adds
// it to the collection.
func (a *Assembler) Append(ep types.Endpoint, tc types.GeneratedTestCase) Item {
	item := ToItem(ep, tc)
	a.collection.Item = append(a.collection.Item, item)
	return item
}

// Collection returns the assembled collection
func (a *Assembler) Collection() *Collection {
	return &a.collection
}

// Len returns the number of accumulated items
func (a *Assembler) Len() int {
	return len(a.collection.Item)
}

// ToItem builds the collection item for one endpoint and its generated test
// case. The assertion scripts are placeholders: each line asserts a success
// status and carries the step's expected result as a trailing comment. Real
// response validation would need the response schemas, which generation does
// not see.
func ToItem(ep types.Endpoint, tc types.GeneratedTestCase) Item {
	exec := make([]string, 0, len(tc.Steps))
	for i, step := range tc.Steps {
		title := fmt.Sprintf("Step %d: %s", i+1, step.Action)
		line := fmt.Sprintf("pm.test(%q, function () { pm.response.to.have.status(200); }); // expected: %s", title, step.ExpectedResult)
		exec = append(exec, line)
	}

	return Item{
		Name: tc.TestCaseName,
		Request: Request{
			Method: ep.Method,
			Header: []Header{
				{Key: "Content-Type", Value: "application/json", Type: "text"},
				{Key: "Accept", Value: "application/json", Type: "text"},
			},
			URL: URL{
				Raw:  "{{BASE_URL}}" + ep.Path,
				Host: []string{"{{BASE_URL}}"},
				Path: pathSegments(ep.Path),
			},
		},
		Event: []Event{
			{
				Listen: "test",
				Script: Script{Type: "text/javascript", Exec: exec},
			},
		},
	}
}

// pathSegments splits the endpoint path on "/" with the leading empty segment
// removed.
func pathSegments(path string) []string {
	segments := strings.Split(path, "/")
	if len(segments) > 0 && segments[0] == "" {
		segments = segments[1:]
	}
	return segments
}
