// internal/workers/infrastructure/build-response/config.go
package buildresponse

import "time"

const TaskType = "build-response"

type Config struct {
	RegistryPath string
	CacheTTL     time.Duration
	AppVersion   string
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		RegistryPath: "configs/registry.json",
		CacheTTL:     5 * time.Minute,
		AppVersion:   "1.0.0",
		Timeout:      10 * time.Second,
	}
}
