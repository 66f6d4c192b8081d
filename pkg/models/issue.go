package models

// Issue is the slice of the event payload the pipeline consumes. It is read
// once at startup and never mutated afterwards.
type Issue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}
