package api

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// DocsResponse lists the routes served, in development only.
type DocsResponse struct {
	Service string  `json:"service"`
	Version string  `json:"version"`
	Routes  []route `json:"routes"`
}
