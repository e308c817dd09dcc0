// internal/workers/recommendation/activity-insights/handler.go
package activityinsights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/common/metrics"
	"recommendation-workers/internal/engine"
	"recommendation-workers/internal/models"
	"recommendation-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

type Handler struct {
	config *Config
	store  *store.Client
	logger logger.Logger
}

func NewHandler(config *Config, st *store.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  st,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}
	if input.UserID == "" {
		h.failJob(client, job, string(stderrors.ErrCodeInvalidInput), "userId is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		code := string(stderrors.ErrCodeInsightsComputationFailed)
		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) {
			code = string(stdErr.Code)
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	ids, err := h.store.GetRecentActivity(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	recent := make([]models.Job, 0, len(ids))
	for _, id := range ids {
		job, err := h.store.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}
		if job == nil {
			continue
		}
		recent = append(recent, *job)
	}

	summary := engine.BuildInsights(recent)

	h.logger.Info("insights computed", map[string]interface{}{
		"userId":          input.UserID,
		"totalActivities": summary.TotalActivities,
		"hasData":         summary.HasData,
	})

	return &Output{Insights: summary}, nil
}

// Execute runs the worker logic directly, bypassing the Zeebe job plumbing.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{"error": err})
	}
}
