// Package store is the data-access layer behind the recommendation workers:
// user profiles and job records in PostgreSQL, the candidate job pool in
// Elasticsearch, and the per-user activity log in Redis.
package store

import (
	"database/sql"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"

	"recommendation-workers/internal/common/logger"
)

const (
	profileKeyPrefix  = "user:profile:"
	activityKeyPrefix = "user:activity:"

	// MaxActivityEntries caps the per-user activity ring buffer.
	MaxActivityEntries = 10

	// MaxJobPool bounds the candidate pool fetched for one ranking request.
	MaxJobPool = 500

	jobIndexName = "jobs"
)

// Client provides every read/write the recommendation workers need.
type Client struct {
	db       *sql.DB
	es       *elasticsearch.Client
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

// New creates a store client over already-connected backends. cacheTTL
// controls the profile cache-aside entries; zero disables caching.
func New(db *sql.DB, es *elasticsearch.Client, rdb *redis.Client, cacheTTL time.Duration, log logger.Logger) *Client {
	return &Client{
		db:       db,
		es:       es,
		redis:    rdb,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "store"}),
	}
}
