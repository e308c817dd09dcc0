// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"recommendation-workers/pkg/registry"
)

var registryPath = "configs/registry.json"

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	idAdd := addCmd.String("id", "", "Worker ID (e.g., track-activity)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Track Activity)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (e.g., recommendation)")
	taskType := addCmd.String("taskType", "", "Camunda Task Type (e.g., track-activity)")
	version := addCmd.String("version", "1.0.0", "Version")

	// Update command flags
	idUpdate := updateCmd.String("id", "", "Worker ID to update")
	field := updateCmd.String("field", "", "Field to update (version, timeout, etc.)")
	value := updateCmd.String("value", "", "New value for the field")

	// Validate command flags
	validateCmd.StringVar(&registryPath, "path", "configs/registry.json", "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *displayName == "" || *description == "" || *category == "" || *taskType == "" {
			fmt.Println("Error: id, displayName, description, category, and taskType are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		definition := registry.WorkerDefinition{
			ID:           *idAdd,
			DisplayName:  *displayName,
			Description:  *description,
			Category:     *category,
			Version:      *version,
			TaskType:     *taskType,
			InputSchema:  map[string]interface{}{},
			OutputSchema: map[string]interface{}{},
			ErrorCodes:   []string{},
			Timeout:      "10s",
			Retries:      0,
			Tags:         []string{},
		}
		err := addWorker(&definition)
		if err != nil {
			fmt.Printf("Error adding worker: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added worker: %s\n", *idAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		err := updateWorker(*idUpdate, *field, *value)
		if err != nil {
			fmt.Printf("Error updating worker: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated worker %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		err := validateRegistry()
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

func addWorker(definition *registry.WorkerDefinition) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		// If file doesn't exist, create new registry
		if os.IsNotExist(err) {
			reg = &registry.WorkerRegistry{
				Version:     "1.0.0",
				LastUpdated: time.Now().Format(time.RFC3339),
				Workers:     []registry.WorkerDefinition{},
			}
		} else {
			return fmt.Errorf("failed to load registry: %w", err)
		}
	}

	// Check if worker already exists
	for _, existing := range reg.Workers {
		if existing.ID == definition.ID {
			return fmt.Errorf("worker with ID %s already exists", definition.ID)
		}
	}

	reg.Workers = append(reg.Workers, *definition)
	reg.LastUpdated = time.Now().Format(time.RFC3339)

	return saveRegistry(reg, registryPath)
}

func updateWorker(id, field, value string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	found := false
	for i := range reg.Workers {
		if reg.Workers[i].ID == id {
			found = true
			switch field {
			case "version":
				reg.Workers[i].Version = value
			case "displayName":
				reg.Workers[i].DisplayName = value
			case "description":
				reg.Workers[i].Description = value
			case "category":
				reg.Workers[i].Category = value
			case "taskType":
				reg.Workers[i].TaskType = value
			case "timeout":
				reg.Workers[i].Timeout = value
			case "retries":
				retries, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("invalid retries value: %w", err)
				}
				reg.Workers[i].Retries = retries
			default:
				return fmt.Errorf("unknown field: %s", field)
			}
			break
		}
	}

	if !found {
		return fmt.Errorf("worker with ID %s not found", id)
	}

	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return saveRegistry(reg, registryPath)
}

func validateRegistry() error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if len(reg.Workers) == 0 {
		return fmt.Errorf("registry contains no workers")
	}

	ids := make(map[string]bool)
	for _, definition := range reg.Workers {
		if ids[definition.ID] {
			return fmt.Errorf("duplicate worker ID: %s", definition.ID)
		}
		ids[definition.ID] = true

		if definition.ID == "" {
			return fmt.Errorf("worker missing required field: ID")
		}
		if definition.DisplayName == "" {
			return fmt.Errorf("worker %s missing required field: DisplayName", definition.ID)
		}
		if definition.TaskType == "" {
			return fmt.Errorf("worker %s missing required field: TaskType", definition.ID)
		}
		if definition.Category == "" {
			return fmt.Errorf("worker %s missing required field: Category", definition.ID)
		}
	}

	fmt.Printf("Registry validation passed. Found %d workers.\n", len(reg.Workers))
	return nil
}

// saveRegistry handles saving the registry to file
func saveRegistry(reg *registry.WorkerRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}

	return nil
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  add     Add a new worker to the registry
  update  Update an existing worker's field
  validate Validate the registry file
  help    Show this help message

Examples:
  registry-updater add -id track-activity -displayName "Track Activity" -description "Records a job view in the activity log" -category recommendation -taskType track-activity
  registry-updater update -id track-activity -field retries -value 3
  registry-updater validate -path configs/registry.json

Use 'registry-updater <command> -h' for more information about a command.
`)
}
