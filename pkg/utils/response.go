package utils

// ResponseData is the envelope used by every JSON endpoint that is not part of the
// gateway-facing contract.
type ResponseData struct {
	Status  int    `json:"-"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}
