package wizard

import (
	"net/http"

	"cac-forms/internal/client"
	"cac-forms/internal/common/validation"
	"cac-forms/internal/forms"
	"cac-forms/internal/models"
)

// MailingStep is a state of the mailing-list signup.
type MailingStep int

const (
	Editing MailingStep = iota + 1
	MailingSubmitted
)

func (s MailingStep) String() string {
	switch s {
	case Editing:
		return "Editing"
	case MailingSubmitted:
		return "Submitted"
	default:
		return "Unknown"
	}
}

type MailingState struct {
	Step         MailingStep
	Fields       map[string]interface{}
	Errors       map[string]string
	InFlight     bool
	Submitted    bool
	Notice       *Notice
	SubscriberID int64
}

// NewMailing starts with notifications on and email as the contact preference.
func NewMailing() MailingState {
	fields := map[string]interface{}{}
	for k, v := range forms.MailingList.Defaults {
		fields[k] = v
	}
	return MailingState{
		Step:   Editing,
		Fields: fields,
		Errors: map[string]string{},
	}
}

// ReduceMailing applies ev to s. s is never modified.
func ReduceMailing(s MailingState, ev Event) (MailingState, *Effect) {
	next := s
	next.Fields = cloneFields(s.Fields)
	next.Errors = cloneErrors(s.Errors)
	next.Notice = nil

	if s.Step == MailingSubmitted {
		return next, nil
	}
	if s.InFlight {
		if r, ok := ev.(Resolved); ok {
			return resolveMailing(next, r.Result), nil
		}
		return next, nil
	}

	switch e := ev.(type) {
	case SetField:
		next.Fields[e.Name] = e.Value
		delete(next.Errors, e.Name)

	case Submit:
		res := validation.Validate(next.Fields, forms.MailingList)
		if !res.OK {
			next.Errors = res.Errors
			return next, nil
		}
		next.Errors = map[string]string{}
		next.InFlight = true
		wants, _ := res.Data["wantsNotifications"].(bool)
		return next, &Effect{
			Endpoint: client.MailingList,
			Payload: models.MailingListPayload{
				FirstName:          str(res.Data, "firstName"),
				LastName:           str(res.Data, "lastName"),
				Email:              str(res.Data, "email"),
				Phone:              str(res.Data, "phone"),
				WantsNotifications: wants,
				ContactPreference:  str(res.Data, "contactPreference"),
			},
		}
	}

	return next, nil
}

func resolveMailing(next MailingState, res client.Result) MailingState {
	next.InFlight = false
	if res.Success {
		next.Step = MailingSubmitted
		next.Submitted = true
		next.SubscriberID = res.ID
		next.Notice = &Notice{Title: welcomeTitle, Description: welcomeText}
		return next
	}
	// A duplicate subscription is the one server error shown on a field.
	if res.Status == http.StatusConflict {
		msg := res.Error
		if msg == "" {
			msg = alreadySubscribed
		}
		next.Errors["email"] = msg
	}
	next.Notice = submissionNotice(res, subscribeFailed)
	return next
}
