// Package main generates JSON schemas for the options of every built-in
// recipe.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/Sumatoshi-tech/codemod/pkg/recipes"
	"github.com/Sumatoshi-tech/codemod/pkg/rewrite"
)

const (
	draft07      = "http://json-schema.org/draft-07/schema#"
	optionTag    = "mapstructure"
	validateTag  = "validate"
	requiredRule = "required"
	pairPattern  = "^[^=]+=.+$"
	dirPerm      = 0o750
	filePerm     = 0o600
)

// Schema represents a JSON Schema.
type Schema struct {
	Schema               string             `json:"$schema,omitempty"`
	Title                string             `json:"title,omitempty"`
	Description          string             `json:"description,omitempty"`
	Type                 string             `json:"type,omitempty"`
	Pattern              string             `json:"pattern,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	OneOf                []*Schema          `json:"oneOf,omitempty"`
	Required             []string           `json:"required,omitempty"`
}

var outputDir string

func main() {
	flag.StringVar(&outputDir, "o", "docs/schemas", "Output directory for schemas")
	flag.Parse()

	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	for _, factory := range recipes.Builtin() {
		recipe := factory()

		if err := writeSchema(recipe.Name(), generateSchema(recipe)); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing schema for %s: %v\n", recipe.Name(), err)
			os.Exit(1)
		}

		fmt.Printf("Generated schema for %s\n", recipe.Name())
	}

	fmt.Println("All schemas generated successfully")
}

// generateSchema describes the options object accepted for recipe. Unknown
// keys are rejected, as the registry decodes with ErrorUnused. Options the
// factory already fills are never required.
func generateSchema(recipe rewrite.Recipe) *Schema {
	props, required := structToProperties(reflect.Indirect(reflect.ValueOf(recipe)))

	return &Schema{
		Schema:               draft07,
		Title:                recipe.Name() + " options",
		Description:          recipe.Description(),
		Type:                 "object",
		Properties:           props,
		AdditionalProperties: false,
		Required:             required,
	}
}

func structToProperties(value reflect.Value) (map[string]*Schema, []string) {
	props := make(map[string]*Schema)

	var required []string

	if value.Kind() != reflect.Struct {
		return props, nil
	}

	t := value.Type()

	for idx := range t.NumField() {
		field := t.Field(idx)

		if field.Anonymous {
			embeddedProps, embeddedRequired := structToProperties(value.Field(idx))
			for name, prop := range embeddedProps {
				props[name] = prop
			}

			required = append(required, embeddedRequired...)

			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get(optionTag), ",")
		if name == "" || name == "-" || !field.IsExported() {
			continue
		}

		props[name] = typeToSchema(field.Type)

		rules := strings.Split(field.Tag.Get(validateTag), ",")
		if rules[0] == requiredRule && value.Field(idx).IsZero() {
			required = append(required, name)
		}
	}

	return props, required
}

func typeToSchema(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Slice:
		return &Schema{Type: "array", Items: typeToSchema(t.Elem())}
	case reflect.Map:
		object := &Schema{Type: "object", AdditionalProperties: typeToSchema(t.Elem())}
		if t.Key().Kind() != reflect.String || t.Elem().Kind() != reflect.String {
			return object
		}

		// String maps may also be written as "old=new" pairs.
		pairs := &Schema{Type: "array", Items: &Schema{Type: "string", Pattern: pairPattern}}

		return &Schema{OneOf: []*Schema{object, pairs}}
	case reflect.Struct:
		props, required := structToProperties(reflect.New(t).Elem())

		return &Schema{Type: "object", Properties: props, Required: required}
	case reflect.Pointer:
		return typeToSchema(t.Elem())
	default:
		return &Schema{}
	}
}

func writeSchema(name string, schema *Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	path := filepath.Join(outputDir, name+".json")

	return os.WriteFile(path, append(data, '\n'), filePerm)
}
