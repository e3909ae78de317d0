package donation

import (
	"cac-forms/internal/common/validation"
	"cac-forms/internal/forms"
	"cac-forms/internal/submissions"
)

const requiredMessage = "Valid amount and payment method are required"

var fieldSchema = validation.Schema{
	Name: "donation",
	Fields: []validation.Field{
		{Name: "name", Kind: validation.KindString, Max: 100},
		{Name: "email", Kind: validation.KindEmail, Max: 100, FormatMessage: "Invalid email format"},
		{Name: "amount", Kind: validation.KindString, Required: true, Max: 32},
		{Name: "payment_method", Kind: validation.KindEnum, Required: true, Options: forms.PaymentMethods,
			FormatMessage: "Invalid payment method"},
	},
}

func missingMessage([]string) string {
	return requiredMessage
}

// InputSchema is the JSON Schema of the request body.
func InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name":           submissions.StringType(),
			"email":          submissions.StringType(),
			"amount":         submissions.StringType(),
			"payment_method": submissions.StringType(),
		},
	}
}
