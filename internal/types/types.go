package types

// Endpoint represents one (HTTP method, path) pair drawn from an OpenAPI document.
// Paths use the ":name" parameter convention (e.g. "/products/:id") and methods
// are upper-case verbs.
type Endpoint struct {
	Path   string `json:"path"`
	Method string `json:"method"`
}

// TestStep is a single step of a generated test case.
type TestStep struct {
	Action         string `json:"action"`
	ExpectedResult string `json:"expectedResult"`
}

// GeneratedTestCase is the decoded LLM output for one endpoint. Steps is
// always non-empty; outputs that cannot satisfy that are replaced with the
// fallback test case before they reach a consumer.
type GeneratedTestCase struct {
	TestCaseName string     `json:"testCaseName"`
	Steps        []TestStep `json:"steps"`
}

// ProgressEvent is one line of the chunked generation response. The populated
// fields determine the variant: {step,msg} for a status message, {step,partial}
// for a streamed fragment, {step:"done",savedTo,collection} for completion and
// {error} for a terminal failure.
type ProgressEvent struct {
	Step       string      `json:"step,omitempty"`
	Msg        string      `json:"msg,omitempty"`
	Partial    string      `json:"partial,omitempty"`
	SavedTo    string      `json:"savedTo,omitempty"`
	Collection interface{} `json:"collection,omitempty"`
	Error      string      `json:"error,omitempty"`
}
