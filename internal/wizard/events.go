// Package wizard models the multi-step form flows as explicit state machines.
// Each flow has a pure reducer (state, event) -> (state, effect); the only
// effect is a submission, which Controller runs through the submission client.
package wizard

import (
	"cac-forms/internal/client"
	"cac-forms/internal/forms"
)

// Event is an input to a reducer.
type Event interface {
	isEvent()
}

// SelectService picks the help-request service and advances to contact info.
type SelectService struct{ Service forms.ServiceType }

// SetField stores a value in the field bag and clears that field's error.
type SetField struct {
	Name  string
	Value interface{}
}

// ToggleDay adds or removes a weekday from the volunteer availability.
type ToggleDay struct{ Day string }

// ChooseSupport picks volunteering or donating on the support wizard.
type ChooseSupport struct{ Kind SupportKind }

// ChooseServiceArea picks the volunteer service area.
type ChooseServiceArea struct{ Area string }

// ChooseAmount picks a preset donation amount or forms.CustomAmount.
type ChooseAmount struct{ Amount string }

type Continue struct{}

type Back struct{}

type Submit struct{}

// Resolved carries the submission client's answer to a submit effect.
type Resolved struct{ Result client.Result }

func (SelectService) isEvent()     {}
func (SetField) isEvent()          {}
func (ToggleDay) isEvent()         {}
func (ChooseSupport) isEvent()     {}
func (ChooseServiceArea) isEvent() {}
func (ChooseAmount) isEvent()      {}
func (Continue) isEvent()          {}
func (Back) isEvent()              {}
func (Submit) isEvent()            {}
func (Resolved) isEvent()          {}

// Effect asks the controller to send Payload to Endpoint.
type Effect struct {
	Endpoint client.Endpoint
	Payload  interface{}
}

// Notice is a transient, non-field message. Reducers clear it on every event.
type Notice struct {
	Title       string
	Description string
	Destructive bool
}

const (
	fixErrorsTitle    = "Please fix the errors"
	fieldsNeedAttn    = "Some fields need your attention."
	requiredMissing   = "Some required fields are missing."
	submitErrorTitle  = "Submission Error"
	helpSubmitFailed  = "Failed to submit your request. Please try again."
	volunteerFailed   = "Failed to submit your application. Please try again."
	donationFailed    = "Failed to record your donation. Please try again."
	subscribeFailed   = "Failed to subscribe. Please try again."
	welcomeTitle      = "Welcome to the Community!"
	welcomeText       = "Thank you for joining. We'll keep you updated on CAC news and events."
	alreadySubscribed = "This email is already subscribed"
	invalidAmount     = "Please enter a valid amount"
)

func validationNotice(description string) *Notice {
	return &Notice{Title: fixErrorsTitle, Description: description, Destructive: true}
}

func submissionNotice(res client.Result, fallback string) *Notice {
	desc := res.Error
	if desc == "" {
		desc = fallback
	}
	return &Notice{Title: submitErrorTitle, Description: desc, Destructive: true}
}

func cloneFields(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		if days, ok := v.([]string); ok {
			v = append([]string(nil), days...)
		}
		out[k] = v
	}
	return out
}

func cloneErrors(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func str(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

func subset(fields map[string]interface{}, keys ...string) map[string]interface{} {
	out := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			out[k] = v
		}
	}
	return out
}
