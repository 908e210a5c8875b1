package generator

import (
	"fmt"

	"auto-collection-gen/internal/types"
)

const systemPrompt = "You are an API test designer that drafts natural-language test cases for HTTP endpoints. Always respond in the requested format."

// oneShotExample constrains the expected output shape. It is embedded in every
// prompt so the model has a concrete target to imitate.
const oneShotExample = `{
  "testCaseName": "Fetch a product by id",
  "steps": [
    {
      "action": "Send a GET request to /products/:id with a valid product id",
      "expectedResult": "200 OK with the product payload in the body"
    },
    {
      "action": "Verify the response body contains the requested id",
      "expectedResult": "The id field matches the path parameter"
    }
  ]
}`

// SystemPrompt returns the system message sent with every generation request.
func SystemPrompt() string {
	return systemPrompt
}

// BuildPrompt renders the generation instruction for one endpoint. Pure and
// deterministic: the same endpoint always yields the same prompt.
func BuildPrompt(ep types.Endpoint) string {
	return fmt.Sprintf(`Draft one concise test case for the following API endpoint:

Endpoint: %s %s

Respond with a single JSON object with exactly two top-level keys and no others:
- "testCaseName": a short descriptive name for the test case
- "steps": a non-empty array of objects, each with an "action" and an "expectedResult" string

Example response for GET /products/:id:
%s`, ep.Method, ep.Path, oneShotExample)
}
