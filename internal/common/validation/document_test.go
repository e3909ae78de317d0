package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shapeSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"availability": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"service_details":     map[string]interface{}{"type": "object"},
			"wants_notifications": map[string]interface{}{"type": "boolean"},
		},
	}
}

func TestValidateDocument_Valid(t *testing.T) {
	errs, err := ValidateDocument(shapeSchema(), map[string]interface{}{
		"availability":    []interface{}{"Monday"},
		"service_details": map[string]interface{}{"veteranBranch": "army"},
		"extra":           "ignored",
	})
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateDocument_ReportsTopLevelFieldOnce(t *testing.T) {
	errs, err := ValidateDocument(shapeSchema(), map[string]interface{}{
		"availability":        []interface{}{1.0, true},
		"service_details":     "none",
		"wants_notifications": "yes",
	})
	require.NoError(t, err)
	assert.Len(t, errs, 3)
	assert.Contains(t, errs, "availability")
	assert.Contains(t, errs, "service_details")
	assert.Contains(t, errs, "wants_notifications")
}

func TestValidateDocument_RequiredUsesPropertyName(t *testing.T) {
	schema := shapeSchema()
	schema["required"] = []interface{}{"availability"}

	errs, err := ValidateDocument(schema, map[string]interface{}{})
	require.NoError(t, err)
	assert.Contains(t, errs, "availability")
}

func TestValidateDocument_BrokenSchema(t *testing.T) {
	_, err := ValidateDocument(map[string]interface{}{"type": 12}, map[string]interface{}{})
	assert.Error(t, err)
}
