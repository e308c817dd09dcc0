// internal/workers/recommendation/activity-insights/config.go
package activityinsights

import "time"

const TaskType = "activity-insights"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
