package task

import "strings"

// Operation represents the type of task operation.
type Operation string

// Operation values for the task queue system.
const (
	OperationSearchRun   Operation = "jobscout.search.run"
	OperationResumeParse Operation = "jobscout.resume.parse"
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	return string(o)
}

// IsSearchOperation returns true for operations in the search pipeline.
func (o Operation) IsSearchOperation() bool {
	return strings.HasPrefix(string(o), "jobscout.search.")
}

// IsResumeOperation returns true for operations in the resume pipeline.
func (o Operation) IsResumeOperation() bool {
	return strings.HasPrefix(string(o), "jobscout.resume.")
}
