package treeio

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is the JSON schema of tree documents.
//
//go:embed tree.schema.json
var Schema []byte

// ValidateJSON checks raw JSON against [Schema].
func ValidateJSON(data []byte) error {
	return validate(gojsonschema.NewBytesLoader(data))
}

// ValidateDocument checks a decoded document against [Schema], whatever
// format it was read from.
func ValidateDocument(doc *Document) error {
	return validate(gojsonschema.NewGoLoader(doc))
}

func validate(input gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(Schema), input)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		problems = append(problems, resultErr.Field()+": "+resultErr.Description())
	}

	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(problems, "; "))
}
