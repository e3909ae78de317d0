package submissions

import (
	"fmt"
	"strings"

	apperrors "cac-forms/internal/common/errors"
	"cac-forms/internal/common/validation"
)

// ShapeMessage is returned when a field has the wrong JSON type.
const ShapeMessage = "Invalid field format"

// MissingMessageFunc renders the error for absent required fields.
type MissingMessageFunc func(missing []string) string

// ListMissing is the default MissingMessageFunc.
func ListMissing(missing []string) string {
	return "Missing required fields: " + strings.Join(missing, ", ")
}

// CheckFields validates doc in three steps: JSON shape, required fields, then
// field rules with email errors reported first. It returns the normalized
// record on success.
func CheckFields(shape map[string]interface{}, schema validation.Schema, doc map[string]interface{}, missing MissingMessageFunc) (map[string]interface{}, error) {
	if shape != nil {
		shapeErrs, err := validation.ValidateDocument(shape, doc)
		if err != nil {
			return nil, fmt.Errorf("%s shape check: %w", schema.Name, err)
		}
		if len(shapeErrs) > 0 {
			return nil, apperrors.NewInvalidInputError(ShapeMessage, shapeErrs)
		}
	}

	res := validation.Validate(doc, schema)
	if len(res.Missing) > 0 {
		if missing == nil {
			missing = ListMissing
		}
		return nil, apperrors.NewInvalidInputError(missing(res.Missing), res.Errors)
	}
	if !res.OK {
		_, msg := res.FirstError(schema)
		return nil, apperrors.NewInvalidInputError(msg, res.Errors)
	}
	return res.Data, nil
}

// StringType is the JSON Schema type of a text field. Numbers are accepted
// and rendered as text.
func StringType() map[string]interface{} {
	return map[string]interface{}{"type": []interface{}{"string", "number", "null"}}
}

// String reads a normalized text field.
func String(data map[string]interface{}, name string) string {
	s, _ := data[name].(string)
	return s
}

// Strings reads a normalized collection field.
func Strings(data map[string]interface{}, name string) []string {
	v, _ := data[name].([]string)
	if v == nil {
		return []string{}
	}
	return v
}

// Bool reads a normalized boolean field.
func Bool(data map[string]interface{}, name string) bool {
	b, _ := data[name].(bool)
	return b
}

// Object reads a normalized object field.
func Object(data map[string]interface{}, name string) map[string]interface{} {
	m, _ := data[name].(map[string]interface{})
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
