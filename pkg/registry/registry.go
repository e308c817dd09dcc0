// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

func LoadRegistry(path string) (*WorkerRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg WorkerRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Validate checks a document against a JSON schema expressed as a plain map.
// An empty schema accepts anything.
func Validate(schema map[string]interface{}, document interface{}) error {
	if len(schema) == 0 {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("document does not match schema: %v", errs)
	}

	return nil
}
