package collection

// SchemaVersion is the Postman collection format the artifact declares.
const SchemaVersion = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// Collection represents the importable test collection. Item order is
// significant: it matches endpoint enumeration order.
type Collection struct {
	Info Info   `json:"info"`
	Item []Item `json:"item"`
}

// Info holds collection metadata
type Info struct {
	PostmanID string `json:"_postman_id"`
	Name      string `json:"name"`
	Schema    string `json:"schema"`
}

// Item represents one request plus its generated assertions
type Item struct {
	Name    string  `json:"name"`
	Request Request `json:"request"`
	Event   []Event `json:"event,omitempty"`
}

// Request is the rendered request descriptor
type Request struct {
	Method string   `json:"method"`
	Header []Header `json:"header"`
	URL    URL      `json:"url"`
}

// Header is a request header key/value pair
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// URL describes the request target. Host carries the templated base-URL
// variable; Path is the endpoint path split into segments.
type URL struct {
	Raw  string   `json:"raw"`
	Host []string `json:"host"`
	Path []string `json:"path"`
}

// Event attaches a script to a request lifecycle phase
type Event struct {
	Listen string `json:"listen"`
	Script Script `json:"script"`
}

// Script holds the assertion script lines
type Script struct {
	Type string   `json:"type"`
	Exec []string `json:"exec"`
}
