// internal/workers/infrastructure/build-response/handler.go
package buildresponse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/common/metrics"
	"recommendation-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const maxDescriptionChars = 200

type registryCacheEntry struct {
	definition *registry.WorkerDefinition
	loadedAt   time.Time
}

type Handler struct {
	config *Config
	logger logger.Logger
	cached *registryCacheEntry
	mu     sync.RWMutex
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		code := string(stderrors.ErrCodeResponseValidationFailed)
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	views := make([]RecommendationView, 0, len(input.Recommendations))
	for _, rec := range input.Recommendations {
		views = append(views, RecommendationView{
			JobID:       rec.Job.ID,
			Role:        rec.Job.Role,
			Company:     rec.Job.CompanyName,
			Location:    rec.Job.Location,
			JobType:     rec.Job.JobType,
			Category:    rec.Job.Category,
			Stipend:     rec.Job.Stipend,
			ApplyLink:   rec.Job.ApplyLink,
			Description: truncate(rec.Job.Description, maxDescriptionChars),
			MatchScore:  int(math.Round(rec.MatchScore * 100)),
			Reason:      rec.RecommendationReason,
		})
	}

	payload := ResponsePayload{
		RequestID: input.RequestID,
		Status:    "success",
		Data: map[string]interface{}{
			"recommendations": views,
			"count":           len(views),
			"hasActivityData": input.HasActivityData,
		},
		Metadata: ResponseMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   h.config.AppVersion,
		},
	}

	if err := h.validate(payload); err != nil {
		return nil, err
	}

	return &Output{Response: payload}, nil
}

func (h *Handler) validate(payload ResponsePayload) error {
	definition, err := h.loadDefinition()
	if err != nil {
		return err
	}
	if definition == nil {
		h.logger.Warn("no registry entry for task type, skipping schema validation", map[string]interface{}{
			"registryPath": h.config.RegistryPath,
		})
		return nil
	}

	if err := registry.Validate(definition.OutputSchema, payload); err != nil {
		return stderrors.NewResponseValidationFailedError(err.Error())
	}
	return nil
}

func (h *Handler) loadDefinition() (*registry.WorkerDefinition, error) {
	h.mu.RLock()
	if h.cached != nil && time.Since(h.cached.loadedAt) < h.config.CacheTTL {
		definition := h.cached.definition
		h.mu.RUnlock()
		return definition, nil
	}
	h.mu.RUnlock()

	reg, err := registry.LoadRegistry(h.config.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	definition := reg.FindByTaskType(TaskType)
	h.mu.Lock()
	h.cached = &registryCacheEntry{definition: definition, loadedAt: time.Now()}
	h.mu.Unlock()
	return definition, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
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
