// pkg/registry/schema.go
package registry

type WorkerRegistry struct {
	Version     string             `json:"version"`
	LastUpdated string             `json:"lastUpdated"`
	Workers     []WorkerDefinition `json:"workers"`
}

type WorkerDefinition struct {
	ID           string                 `json:"id"`
	DisplayName  string                 `json:"displayName"`
	Description  string                 `json:"description"`
	Category     string                 `json:"category"`
	Version      string                 `json:"version"`
	TaskType     string                 `json:"taskType"`
	InputSchema  map[string]interface{} `json:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema"`
	ErrorCodes   []string               `json:"errorCodes"`
	Timeout      string                 `json:"timeout"`
	Retries      int                    `json:"retries"`
	Tags         []string               `json:"tags"`
}

// FindByTaskType returns the definition registered for the given task type,
// or nil when the registry does not know it.
func (r *WorkerRegistry) FindByTaskType(taskType string) *WorkerDefinition {
	for i := range r.Workers {
		if r.Workers[i].TaskType == taskType {
			return &r.Workers[i]
		}
	}
	return nil
}
