// internal/workers/recommendation/track-activity/config.go
package trackactivity

import "time"

const TaskType = "track-activity"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
