// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// JobHandlerFunc processes a single activated job. Completion and failure
// are reported through the job client inside the handler.
type JobHandlerFunc func(client worker.JobClient, job entities.Job)

// WorkerOptions controls how a job worker polls the broker.
type WorkerOptions struct {
	MaxJobsActive int
	Timeout       time.Duration
}

// CamundaWorker wraps an open Zeebe job worker so it can be closed
// individually during shutdown.
type CamundaWorker struct {
	taskType  string
	jobWorker worker.JobWorker
	logger    *zap.Logger
}

// NewWorker opens a job worker for the given task type and starts polling.
func NewWorker(
	client zbc.Client,
	taskType string,
	opts WorkerOptions,
	handler JobHandlerFunc,
	logger *zap.Logger,
) *CamundaWorker {
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(handler)).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		Open()

	logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", opts.MaxJobsActive),
		zap.Duration("timeout", opts.Timeout),
	)

	return &CamundaWorker{
		taskType:  taskType,
		jobWorker: jobWorker,
		logger:    logger,
	}
}

// Close stops polling and waits for in-flight jobs to finish.
func (w *CamundaWorker) Close() {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))
	w.jobWorker.Close()
	w.jobWorker.AwaitClose()
}
