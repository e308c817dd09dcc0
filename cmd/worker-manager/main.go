// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"recommendation-workers/internal/common/camunda"
	"recommendation-workers/internal/common/config"
	"recommendation-workers/internal/common/database"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/common/observability"
	"recommendation-workers/internal/store"

	activityinsights "recommendation-workers/internal/workers/recommendation/activity-insights"
	recommendjobs "recommendation-workers/internal/workers/recommendation/recommend-jobs"
	trackactivity "recommendation-workers/internal/workers/recommendation/track-activity"

	buildresponse "recommendation-workers/internal/workers/infrastructure/build-response"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		if err != nil {
			return err
		}
		return camundaClient.HealthCheck(ctx)
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Shared store over the three backends ---
	st := store.New(
		pg.GetDB(),
		esClient.Client,
		redisClient.GetClient(),
		config.GetDuration(cfg.Recommendation.ProfileCacheTTL),
		log,
	)

	// --- Register Workers ---

	var workers []*camunda.CamundaWorker
	addWorker := func(w *camunda.CamundaWorker) {
		if w != nil {
			workers = append(workers, w)
		}
	}

	{
		wcfg := recommendjobs.LoadConfig()
		wcfg.DefaultLimit = cfg.Recommendation.DefaultLimit
		wcfg.JobPoolLimit = cfg.Recommendation.JobPoolLimit
		if t, ok := cfg.Workers[recommendjobs.TaskType]; ok && t.Timeout > 0 {
			wcfg.Timeout = config.GetDuration(t.Timeout)
		}
		handler := recommendjobs.NewHandler(wcfg, st, log)
		addWorker(startWorker(zeebeClient, obs, recommendjobs.TaskType, cfg.Workers[recommendjobs.TaskType], handler.Handle, zapLog))
	}

	{
		wcfg := trackactivity.LoadConfig()
		if t, ok := cfg.Workers[trackactivity.TaskType]; ok && t.Timeout > 0 {
			wcfg.Timeout = config.GetDuration(t.Timeout)
		}
		handler := trackactivity.NewHandler(wcfg, st, log)
		addWorker(startWorker(zeebeClient, obs, trackactivity.TaskType, cfg.Workers[trackactivity.TaskType], handler.Handle, zapLog))
	}

	{
		wcfg := activityinsights.LoadConfig()
		if t, ok := cfg.Workers[activityinsights.TaskType]; ok && t.Timeout > 0 {
			wcfg.Timeout = config.GetDuration(t.Timeout)
		}
		handler := activityinsights.NewHandler(wcfg, st, log)
		addWorker(startWorker(zeebeClient, obs, activityinsights.TaskType, cfg.Workers[activityinsights.TaskType], handler.Handle, zapLog))
	}

	{
		wcfg := buildresponse.LoadConfig()
		wcfg.RegistryPath = cfg.Registry.Path
		wcfg.AppVersion = cfg.App.Version
		if t, ok := cfg.Workers[buildresponse.TaskType]; ok && t.Timeout > 0 {
			wcfg.Timeout = config.GetDuration(t.Timeout)
		}
		handler := buildresponse.NewHandler(wcfg, log)
		addWorker(startWorker(zeebeClient, obs, buildresponse.TaskType, cfg.Workers[buildresponse.TaskType], handler.Handle, zapLog))
	}

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Close()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, obs *observability.Observability, taskType string, wcfg config.WorkerConfig, handlerFunc camunda.JobHandlerFunc, log *zap.Logger) *camunda.CamundaWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}

	instrumented := func(jobClient worker.JobClient, job entities.Job) {
		start := time.Now()
		handlerFunc(jobClient, job)
		obs.RecordJobDuration(context.Background(), time.Since(start), "processed")
		obs.RecordJobProcessed(context.Background(), "processed")
	}

	opts := camunda.WorkerOptions{
		MaxJobsActive: wcfg.MaxJobsActive,
		Timeout:       time.Duration(wcfg.Timeout) * time.Millisecond,
	}
	return camunda.NewWorker(client, taskType, opts, instrumented, log)
}
