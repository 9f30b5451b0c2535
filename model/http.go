package model

// TabRequestBody is the JSON body of POST /tab. Zero-valued options keep
// the server defaults.
type TabRequestBody struct {
	Notes            []NoteEvent `json:"notes"`
	Tuning           string      `json:"tuning,omitempty"`
	GroupingWindowMs float64     `json:"grouping_window_ms,omitempty"`
	MaxStretch       int         `json:"max_stretch,omitempty"`
}

type JobResponse struct {
	ID       string    `json:"file_id"`
	Filename string    `json:"filename,omitempty"`
	Status   JobStatus `json:"status"`
	Result   *Result   `json:"result,omitempty"`
}

type StatusResponse struct {
	ID           string `json:"file_id"`
	Status       string `json:"status"`
	TabGenerated bool   `json:"tab_generated"`
	Error        string `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
