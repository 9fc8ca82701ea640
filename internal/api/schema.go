package api

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/formula-meta.schema.json
var formulaMetaSchemaJSON string

var formulaMetaSchema = jsonschema.MustCompileString(
	"formula-meta.schema.json", formulaMetaSchemaJSON,
)

// ValidateFormulaMeta checks raw formula meta YAML against the formula meta
// schema.
func ValidateFormulaMeta(metaBytes []byte) error {
	var doc interface{}
	err := yaml.Unmarshal(metaBytes, &doc)
	if err != nil {
		return err
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}

	err = formulaMetaSchema.Validate(doc)
	if err != nil {
		return fmt.Errorf("invalid formula metadata: %s", strings.TrimSpace(err.Error()))
	}
	return nil
}
