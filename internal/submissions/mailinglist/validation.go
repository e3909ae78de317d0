package mailinglist

import (
	"cac-forms/internal/common/validation"
	"cac-forms/internal/forms"
	"cac-forms/internal/submissions"
)

const defaultContactPreference = "email"

var fieldSchema = validation.Schema{
	Name: "mailing-list",
	Fields: []validation.Field{
		{Name: "first_name", Kind: validation.KindString, Required: true, Max: 50},
		{Name: "last_name", Kind: validation.KindString, Required: true, Max: 50},
		{Name: "email", Kind: validation.KindEmail, Required: true, Max: 100, FormatMessage: "Invalid email format"},
		{Name: "phone", Kind: validation.KindPhone, Required: true, FormatMessage: "Invalid phone number"},
		{Name: "wants_notifications", Kind: validation.KindBool},
		{Name: "contact_preference", Kind: validation.KindEnum, Options: forms.ContactPreferences,
			FormatMessage: "Invalid contact preference"},
	},
	Defaults: map[string]interface{}{
		"wants_notifications": true,
		"contact_preference":  defaultContactPreference,
	},
}

// InputSchema is the JSON Schema of the request body.
func InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"first_name": submissions.StringType(),
			"last_name":  submissions.StringType(),
			"email":      submissions.StringType(),
			"phone":      submissions.StringType(),
			"wants_notifications": map[string]interface{}{
				"type": []interface{}{"boolean", "null"},
			},
			"contact_preference": submissions.StringType(),
		},
	}
}
