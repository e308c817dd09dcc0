// internal/workers/recommendation/recommend-jobs/config.go
package recommendjobs

import "time"

const TaskType = "recommend-jobs"

type Config struct {
	Timeout      time.Duration
	DefaultLimit int
	JobPoolLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		DefaultLimit: 10,
		JobPoolLimit: 500,
	}
}
