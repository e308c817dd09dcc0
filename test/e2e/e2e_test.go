// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recommendation-workers/internal/common/config"
	"recommendation-workers/internal/common/database"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/models"
	"recommendation-workers/internal/store"

	activityinsights "recommendation-workers/internal/workers/recommendation/activity-insights"
	recommendjobs "recommendation-workers/internal/workers/recommendation/recommend-jobs"
	trackactivity "recommendation-workers/internal/workers/recommendation/track-activity"

	buildresponse "recommendation-workers/internal/workers/infrastructure/build-response"
)

var (
	zeebeClient zbc.Client
	zapLog      *zap.Logger
)

const testUserID = "e2e-user-1"

func TestMain(m *testing.M) {
	if os.Getenv("E2E_TESTS") != "true" {
		fmt.Println("skipping e2e tests (set E2E_TESTS=true to run against live services)")
		os.Exit(0)
	}

	var err error
	zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         "localhost:26500",
		UsePlaintextConnection: true,
	})
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to connect to Zeebe: %v", err))
	}

	zapLog, _ = zap.NewProduction()

	code := m.Run()

	zeebeClient.Close()
	os.Exit(code)
}

func TestFullE2E(t *testing.T) {
	_, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	t.Log("🚀 Starting FULL E2E Test with real services...")

	assertAllServicesConnectivity(t, cfg)
	createDatabaseTables(t, cfg)
	seedJobIndex(t, cfg)
	testAllWorkers(t, cfg, zapLog)

	t.Log("✅ ALL TESTS PASSED — Full E2E workflow successful!")
}

func assertAllServicesConnectivity(t *testing.T, cfg *config.Config) {
	t.Log("🔍 Checking service connectivity...")

	// 🔧 FORCE LOCALHOST FOR E2E TESTS
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.URL = "http://localhost:9200"

	// --- PostgreSQL ---
	db, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "❌ PostgreSQL connection failed")
	assert.NoError(t, db.Ping(context.Background()), "❌ PostgreSQL ping failed")
	db.Close()
	t.Log("✅ PostgreSQL connected")

	// --- Redis ---
	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "❌ Redis client creation failed")
	assert.NoError(t, rdb.Ping(context.Background()), "❌ Redis ping failed")
	rdb.Close()
	t.Log("✅ Redis connected")

	// --- Elasticsearch ---
	esURL := cfg.Database.Elasticsearch.GetURL()
	t.Logf("🔗 Elasticsearch URL: %s", esURL)

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esURL},
	})
	require.NoError(t, err, "❌ Elasticsearch client creation failed")

	res, err := es.Info()
	require.NoError(t, err, "❌ Elasticsearch info request failed")
	assert.False(t, res.IsError(), "❌ Elasticsearch returned error")
	res.Body.Close()
	t.Log("✅ Elasticsearch connected")

	// --- Zeebe ---
	_, err = zeebeClient.NewTopologyCommand().Send(context.Background())
	assert.NoError(t, err, "❌ Zeebe topology request failed")
	t.Log("✅ Zeebe connected")
}

func createDatabaseTables(t *testing.T, cfg *config.Config) {
	t.Log("🔧 Creating database tables and inserting test data...")

	dbClient, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer dbClient.Close()

	db := dbClient.GetDB()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id VARCHAR(255) PRIMARY KEY,
			skills JSONB,
			location VARCHAR(255),
			experience_level VARCHAR(100),
			education VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id VARCHAR(255) PRIMARY KEY,
			role VARCHAR(255) NOT NULL,
			company_name VARCHAR(255),
			location VARCHAR(255),
			job_type VARCHAR(100),
			experience_level VARCHAR(100),
			skills JSONB,
			description TEXT,
			category VARCHAR(100),
			stipend VARCHAR(100),
			apply_link TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, q := range queries {
		_, err := db.Exec(q)
		require.NoError(t, err, "❌ Failed to create table")
	}

	seed := []string{
		`INSERT INTO user_profiles (user_id, skills, location, experience_level, education)
		 VALUES ('` + testUserID + `', '["python", "sql"]', 'Bangalore', 'entry', 'B.Tech')
		 ON CONFLICT (user_id) DO UPDATE SET skills = EXCLUDED.skills, location = EXCLUDED.location`,
		`INSERT INTO jobs (id, role, company_name, location, job_type, experience_level, skills, description, category, stipend, apply_link)
		 VALUES ('e2e-job-1', 'Data Analyst', 'Acme', 'Bangalore', 'internship', 'entry', '["python", "sql"]',
		         'Analyse product data with python and sql', 'analytics', '20000', 'https://jobs.example.com/e2e-job-1')
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO jobs (id, role, company_name, location, job_type, experience_level, skills, description, category, stipend, apply_link)
		 VALUES ('e2e-job-2', 'Marketing Associate', 'Globex', 'Mumbai', 'full-time', 'senior', '["seo"]',
		         'Run growth marketing campaigns', 'marketing', '', '')
		 ON CONFLICT (id) DO NOTHING`,
	}

	for _, q := range seed {
		_, err := db.Exec(q)
		require.NoError(t, err, "❌ Failed to insert test data")
	}

	t.Log("✅ Database tables ready")
}

func seedJobIndex(t *testing.T, cfg *config.Config) {
	t.Log("🔧 Seeding the jobs index...")

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Database.Elasticsearch.GetURL()},
	})
	require.NoError(t, err)

	docs := map[string]string{
		"e2e-job-1": `{"id": "e2e-job-1", "role": "Data Analyst", "companyName": "Acme", "location": "Bangalore",
			"jobType": "internship", "experienceLevel": "entry", "skills": ["python", "sql"],
			"description": "Analyse product data with python and sql", "category": "analytics",
			"stipend": "20000", "applyLink": "https://jobs.example.com/e2e-job-1"}`,
		"e2e-job-2": `{"id": "e2e-job-2", "role": "Marketing Associate", "companyName": "Globex", "location": "Mumbai",
			"jobType": "full-time", "experienceLevel": "senior", "skills": ["seo"],
			"description": "Run growth marketing campaigns", "category": "marketing"}`,
	}

	for id, body := range docs {
		res, err := es.Index("jobs", strings.NewReader(body),
			es.Index.WithDocumentID(id),
			es.Index.WithRefresh("true"),
		)
		require.NoError(t, err, "❌ Failed to index job document")
		require.False(t, res.IsError(), "❌ Elasticsearch rejected job document")
		res.Body.Close()
	}

	t.Log("✅ Jobs index seeded")
}

func newStore(t *testing.T, cfg *config.Config, log *zap.Logger) *store.Client {
	t.Helper()

	dbClient, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	t.Cleanup(func() { dbClient.Close() })

	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)

	rdbClient, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	t.Cleanup(func() { rdbClient.Close() })

	return store.New(
		dbClient.GetDB(),
		esClient.Client,
		rdbClient.GetClient(),
		0, // no profile caching in e2e, always hit Postgres
		logger.NewZapAdapter(log),
	)
}

func testAllWorkers(t *testing.T, cfg *config.Config, log *zap.Logger) {
	t.Log("🧪 Testing all workers with real execution...")

	testCases := []struct {
		name   string
		testFn func(*testing.T, *config.Config, *zap.Logger)
	}{
		{"track-activity", testTrackActivity},
		{"recommend-jobs", testRecommendJobs},
		{"activity-insights", testActivityInsights},
		{"build-response", testBuildResponse},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.testFn(t, cfg, log)
		})
	}
}

func testTrackActivity(t *testing.T, cfg *config.Config, log *zap.Logger) {
	handler := trackactivity.NewHandler(trackactivity.LoadConfig(), newStore(t, cfg, log), logger.NewZapAdapter(log))

	output, err := handler.Execute(context.Background(), &trackactivity.Input{
		UserID: testUserID,
		JobID:  "e2e-job-1",
	})
	require.NoError(t, err)
	assert.True(t, output.Recorded)
	assert.GreaterOrEqual(t, output.ActivityCount, int64(1))

	// Re-recording the same job must not grow the log.
	again, err := handler.Execute(context.Background(), &trackactivity.Input{
		UserID: testUserID,
		JobID:  "e2e-job-1",
	})
	require.NoError(t, err)
	assert.Equal(t, output.ActivityCount, again.ActivityCount)
}

func testRecommendJobs(t *testing.T, cfg *config.Config, log *zap.Logger) {
	handler := recommendjobs.NewHandler(recommendjobs.LoadConfig(), newStore(t, cfg, log), logger.NewZapAdapter(log))

	output, err := handler.Execute(context.Background(), &recommendjobs.Input{
		UserID: testUserID,
		Limit:  10,
	})
	require.NoError(t, err)
	assert.True(t, output.HasActivityData, "track-activity ran first, history should exist")
	assert.NotEmpty(t, output.RequestID)

	for _, rec := range output.Recommendations {
		assert.NotEqual(t, "e2e-job-1", rec.Job.ID, "seen jobs must not be recommended")
		assert.GreaterOrEqual(t, rec.MatchScore, 0.0)
		assert.LessOrEqual(t, rec.MatchScore, 1.0)
		assert.NotEmpty(t, rec.RecommendationReason)
	}

	// Unknown users get an empty result, not an error.
	empty, err := handler.Execute(context.Background(), &recommendjobs.Input{UserID: "e2e-ghost"})
	require.NoError(t, err)
	assert.Empty(t, empty.Recommendations)
}

func testActivityInsights(t *testing.T, cfg *config.Config, log *zap.Logger) {
	handler := activityinsights.NewHandler(activityinsights.LoadConfig(), newStore(t, cfg, log), logger.NewZapAdapter(log))

	output, err := handler.Execute(context.Background(), &activityinsights.Input{UserID: testUserID})
	require.NoError(t, err)
	assert.True(t, output.Insights.HasData)
	assert.Contains(t, output.Insights.TopCompanies, "acme")

	// No history means an explicit empty summary.
	empty, err := handler.Execute(context.Background(), &activityinsights.Input{UserID: "e2e-ghost"})
	require.NoError(t, err)
	assert.False(t, empty.Insights.HasData)
}

func testBuildResponse(t *testing.T, cfg *config.Config, log *zap.Logger) {
	wcfg := buildresponse.LoadConfig()
	wcfg.RegistryPath = findRegistry(t)

	handler := buildresponse.NewHandler(wcfg, logger.NewZapAdapter(log))

	output, err := handler.Execute(context.Background(), &buildresponse.Input{
		RequestID: "e2e-request-1",
		Recommendations: []models.ScoredJob{
			{
				Job: models.Job{
					ID:          "e2e-job-2",
					Role:        "Marketing Associate",
					CompanyName: "Globex",
					Description: strings.Repeat("campaign details ", 20),
				},
				MatchScore:           0.42,
				RecommendationReason: "Recommended for you",
			},
		},
		HasActivityData: true,
		Count:           1,
	})
	require.NoError(t, err)
	assert.Equal(t, "success", output.Response.Status)
	assert.Equal(t, "e2e-request-1", output.Response.RequestID)
}

func findRegistry(t *testing.T) string {
	t.Helper()
	for _, path := range []string{
		"configs/registry.json",
		"../configs/registry.json",
		"../../configs/registry.json",
	} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Skip("⚠️ registry.json not found, skipping build-response validation")
	return ""
}
