package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.yaml
var embedded embed.FS

const (
	deploymentSchemaFile = "deployment.schema.yaml"
	planSchemaFile       = "plan.schema.yaml"
)

// Validator handles JSON schema validation
type Validator struct {
	deploymentSchema *jsonschema.Schema
	planSchema       *jsonschema.Schema
}

// NewValidator creates a validator from the schemas compiled into the binary
func NewValidator() (*Validator, error) {
	return newValidator(func(name string) ([]byte, error) {
		return embedded.ReadFile("schemas/" + name)
	})
}

// NewValidatorFromDir creates a validator from schema files in a directory
func NewValidatorFromDir(schemasDir string) (*Validator, error) {
	return newValidator(func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(schemasDir, name))
	})
}

func newValidator(read func(string) ([]byte, error)) (*Validator, error) {
	v := &Validator{}

	deploymentSchema, err := loadSchema(read, deploymentSchemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load deployment schema: %w", err)
	}
	v.deploymentSchema = deploymentSchema

	planSchema, err := loadSchema(read, planSchemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan schema: %w", err)
	}
	v.planSchema = planSchema

	return v, nil
}

// ValidateDeployment validates a deployment document against the schema
func (v *Validator) ValidateDeployment(data interface{}) error {
	if v.deploymentSchema == nil {
		return fmt.Errorf("deployment schema not loaded")
	}
	return validate(v.deploymentSchema, data)
}

// ValidatePlan validates a plan document
func (v *Validator) ValidatePlan(data interface{}) error {
	if v.planSchema == nil {
		return fmt.Errorf("plan schema not loaded")
	}
	return validate(v.planSchema, data)
}

// validate normalises data through JSON so YAML-decoded values and Go
// structs are checked the same way
func validate(s *jsonschema.Schema, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return s.Validate(doc)
}

// loadSchema loads and compiles a schema file (JSON or YAML)
func loadSchema(read func(string) ([]byte, error), name string) (*jsonschema.Schema, error) {
	data, err := read(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	// Parse YAML to interface{} (supports both YAML and JSON)
	var schemaData interface{}
	if err := yaml.Unmarshal(data, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	// Convert to JSON for schema compiler
	jsonData, err := json.Marshal(schemaData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	url := "litetopo://schemas/" + name
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(jsonData)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return schema, nil
}
