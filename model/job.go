package model

import "time"

type JobStatus = string

const (
	JobProcessing JobStatus = "processing"
	JobDone       JobStatus = "tab_generated"
	JobFailed     JobStatus = "error"
)

type Job struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename,omitempty"`
	Status    JobStatus `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Result    *Result   `json:"result,omitempty"`
}
