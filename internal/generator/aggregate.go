package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"auto-collection-gen/internal/types"
)

// FallbackTestCase is the canonical single-step test case substituted when the
// model output is unusable.
func FallbackTestCase(ep types.Endpoint) types.GeneratedTestCase {
	return types.GeneratedTestCase{
		TestCaseName: fmt.Sprintf("%s %s Default Test", ep.Method, ep.Path),
		Steps: []types.TestStep{
			{Action: "Verify response status", ExpectedResult: "200 OK"},
		},
	}
}

// Aggregate concatenates the streamed fragments in order and decodes them as a
// GeneratedTestCase. On invalid syntax or a missing/empty steps sequence it
// returns the fallback test case instead of an error, so one bad model
// response cannot abort the whole batch.
func Aggregate(ep types.Endpoint, fragments []string) types.GeneratedTestCase {
	var buf strings.Builder
	for _, f := range fragments {
		buf.WriteString(f)
	}

	raw := stripMarkdownCodeBlock(buf.String())

	var tc types.GeneratedTestCase
	if err := json.Unmarshal([]byte(raw), &tc); err != nil {
		return FallbackTestCase(ep)
	}
	if len(tc.Steps) == 0 {
		return FallbackTestCase(ep)
	}
	return tc
}

// stripMarkdownCodeBlock removes a surrounding ``` fence. Models wrap JSON in
// fences even when asked for a bare object.
func stripMarkdownCodeBlock(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx != -1 {
		trimmed = trimmed[idx+1:]
	}
	if end := strings.LastIndex(trimmed, "```"); end != -1 {
		trimmed = trimmed[:end]
	}
	return strings.TrimSpace(trimmed)
}
