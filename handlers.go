package jobscout

import (
	resumehandler "github.com/vantahq/jobscout/application/handler/resume"
	searchhandler "github.com/vantahq/jobscout/application/handler/search"
	"github.com/vantahq/jobscout/domain/task"
)

// registerHandlers registers all task handlers with the worker registry.
func (c *Client) registerHandlers() {
	c.registry.Register(task.OperationSearchRun, searchhandler.NewRun(c.Search, c.logger))
	c.registry.Register(task.OperationResumeParse, resumehandler.NewParse(c.Resumes, c.logger))
}
