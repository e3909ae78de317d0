package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateDocument checks the JSON shape of doc against a JSON Schema and
// returns the first error per top-level field. An error is returned only when
// the schema itself cannot be evaluated.
func ValidateDocument(schema map[string]interface{}, doc map[string]interface{}) (map[string]string, error) {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	errs := map[string]string{}
	if result.Valid() {
		return errs, nil
	}

	for _, desc := range result.Errors() {
		field := topLevelField(desc)
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = desc.Description()
	}
	return errs, nil
}

func topLevelField(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if field == gojsonschema.STRING_CONTEXT_ROOT || field == "" {
		if prop, ok := desc.Details()["property"].(string); ok && prop != "" {
			return prop
		}
		return gojsonschema.STRING_CONTEXT_ROOT
	}
	if i := strings.Index(field, "."); i >= 0 {
		return field[:i]
	}
	return field
}
