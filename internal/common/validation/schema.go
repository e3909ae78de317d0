package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Kind selects the rule applied to a field.
type Kind int

const (
	KindString Kind = iota
	KindEmail
	KindPhone
	KindEnum
	KindCollection
	KindBool
	KindObject
)

// PhonePattern accepts 10-20 digits, spaces, dashes, dots, parentheses and plus signs.
var PhonePattern = regexp.MustCompile(`^[\d\s\-\(\)\.+]{10,20}$`)

var validate = validator.New()

// Field is one rule of a Schema.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Max is the maximum length in characters for string kinds; 0 means unlimited.
	Max int
	// Options is the allowed literal set for enums and collection elements.
	Options []string
	// Min is the minimum number of elements for a required collection.
	Min int

	Message       string // shown when a required value is missing
	MaxMessage    string // shown when Max is exceeded
	FormatMessage string // shown for a malformed value
}

// Schema is a named, ordered list of field rules plus per-field defaults for
// optional values.
type Schema struct {
	Name     string
	Fields   []Field
	Defaults map[string]interface{}
}

// Result is the outcome of Validate. Data holds the normalized record for the
// schema's fields; Errors holds exactly one message per failing field.
type Result struct {
	OK      bool
	Data    map[string]interface{}
	Errors  map[string]string
	Missing []string
}

// FirstError returns the message of the first failing field in schema order,
// preferring email fields.
func (r Result) FirstError(schema Schema) (string, string) {
	for _, f := range schema.Fields {
		if f.Kind == KindEmail {
			if msg, ok := r.Errors[f.Name]; ok {
				return f.Name, msg
			}
		}
	}
	for _, f := range schema.Fields {
		if msg, ok := r.Errors[f.Name]; ok {
			return f.Name, msg
		}
	}
	return "", ""
}

// Validate checks bag against schema. bag is never modified.
func Validate(bag map[string]interface{}, schema Schema) Result {
	data := make(map[string]interface{}, len(schema.Fields))
	errs := map[string]string{}
	var missing []string

	for _, f := range schema.Fields {
		raw, present := bag[f.Name]
		if !present || raw == nil {
			if def, ok := schema.Defaults[f.Name]; ok {
				raw, present = cloneValue(def), true
			}
		}

		value, msg, isMissing := checkField(f, raw, present)
		if msg != "" {
			if _, seen := errs[f.Name]; !seen {
				errs[f.Name] = msg
			}
			if isMissing {
				missing = append(missing, f.Name)
			}
			continue
		}
		data[f.Name] = value
	}

	return Result{
		OK:      len(errs) == 0,
		Data:    data,
		Errors:  errs,
		Missing: missing,
	}
}

func checkField(f Field, raw interface{}, present bool) (interface{}, string, bool) {
	switch f.Kind {
	case KindCollection:
		return checkCollection(f, raw)
	case KindBool:
		return checkBool(f, raw, present)
	case KindObject:
		return checkObject(f, raw, present)
	default:
		return checkString(f, raw)
	}
}

func checkString(f Field, raw interface{}) (interface{}, string, bool) {
	s, ok := asString(raw)
	if !ok {
		return nil, formatMessage(f), false
	}

	if s == "" {
		if f.Required {
			return nil, requiredMessage(f), true
		}
		return "", "", false
	}

	if f.Max > 0 && utf8.RuneCountInString(s) > f.Max {
		msg := f.MaxMessage
		if msg == "" {
			msg = fmt.Sprintf("Must be less than %d characters", f.Max)
		}
		return nil, msg, false
	}

	switch f.Kind {
	case KindEmail:
		if err := validate.Var(s, "email"); err != nil {
			return nil, formatMessage(f), false
		}
	case KindPhone:
		if !PhonePattern.MatchString(s) {
			return nil, formatMessage(f), false
		}
	case KindEnum:
		if !contains(f.Options, s) {
			return nil, formatMessage(f), false
		}
	}

	return s, "", false
}

func checkCollection(f Field, raw interface{}) (interface{}, string, bool) {
	var items []string
	switch v := raw.(type) {
	case nil:
	case []string:
		for _, item := range v {
			items = append(items, strings.TrimSpace(item))
		}
	case []interface{}:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, formatMessage(f), false
			}
			items = append(items, strings.TrimSpace(s))
		}
	default:
		return nil, formatMessage(f), false
	}

	minItems := f.Min
	if f.Required && minItems < 1 {
		minItems = 1
	}
	if len(items) < minItems {
		return nil, requiredMessage(f), true
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if len(f.Options) > 0 && !contains(f.Options, item) {
			return nil, formatMessage(f), false
		}
		out = append(out, item)
	}
	return out, "", false
}

func checkBool(f Field, raw interface{}, present bool) (interface{}, string, bool) {
	if !present || raw == nil {
		if f.Required {
			return nil, requiredMessage(f), true
		}
		return false, "", false
	}
	b, ok := raw.(bool)
	if !ok {
		return nil, formatMessage(f), false
	}
	return b, "", false
}

func checkObject(f Field, raw interface{}, present bool) (interface{}, string, bool) {
	if !present || raw == nil {
		if f.Required {
			return nil, requiredMessage(f), true
		}
		return map[string]interface{}{}, "", false
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, formatMessage(f), false
	}
	return cloneValue(m), "", false
}

// asString trims strings and renders JSON numbers; other types are rejected.
func asString(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}

func requiredMessage(f Field) string {
	if f.Message != "" {
		return f.Message
	}
	return fmt.Sprintf("%s is required", f.Name)
}

func formatMessage(f Field) string {
	if f.FormatMessage != "" {
		return f.FormatMessage
	}
	return fmt.Sprintf("%s is invalid", f.Name)
}

func contains(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
