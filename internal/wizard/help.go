package wizard

import (
	"cac-forms/internal/client"
	"cac-forms/internal/common/validation"
	"cac-forms/internal/forms"
	"cac-forms/internal/models"
)

// HelpStep is a state of the help-request wizard.
type HelpStep int

const (
	SelectingService HelpStep = iota + 1
	EnteringContactInfo
	EnteringServiceDetails
	HelpSubmitted
)

func (s HelpStep) String() string {
	switch s {
	case SelectingService:
		return "SelectingService"
	case EnteringContactInfo:
		return "EnteringContactInfo"
	case EnteringServiceDetails:
		return "EnteringServiceDetails"
	case HelpSubmitted:
		return "Submitted"
	default:
		return "Unknown"
	}
}

var contactKeys = []string{"firstName", "lastName", "email", "phone", "address", "city", "state", "zip"}

type HelpState struct {
	Step      HelpStep
	Service   forms.ServiceType
	Fields    map[string]interface{}
	Errors    map[string]string
	InFlight  bool
	Submitted bool
	Notice    *Notice
	// RequestID is the id returned for the stored request.
	RequestID int64
}

func NewHelp() HelpState {
	return HelpState{
		Step:   SelectingService,
		Fields: map[string]interface{}{},
		Errors: map[string]string{},
	}
}

// ReduceHelp applies ev to s. s is never modified.
func ReduceHelp(s HelpState, ev Event) (HelpState, *Effect) {
	next := s
	next.Fields = cloneFields(s.Fields)
	next.Errors = cloneErrors(s.Errors)
	next.Notice = nil

	if s.Step == HelpSubmitted {
		return next, nil
	}
	if s.InFlight {
		if r, ok := ev.(Resolved); ok {
			return resolveHelp(next, r.Result), nil
		}
		return next, nil
	}

	switch e := ev.(type) {
	case SelectService:
		if s.Step != SelectingService || !e.Service.Valid() {
			return next, nil
		}
		next.Service = e.Service
		next.Errors = map[string]string{}
		next.Step = EnteringContactInfo

	case SetField:
		if s.Step == SelectingService {
			return next, nil
		}
		next.Fields[e.Name] = e.Value
		delete(next.Errors, e.Name)

	case Continue:
		switch s.Step {
		case SelectingService:
			if next.Service.Valid() {
				next.Step = EnteringContactInfo
			}
		case EnteringContactInfo:
			res := validation.Validate(subset(next.Fields, contactKeys...), forms.ContactInfo)
			if !res.OK {
				next.Errors = res.Errors
				next.Notice = validationNotice(fieldsNeedAttn)
				return next, nil
			}
			next.Errors = map[string]string{}
			next.Step = EnteringServiceDetails
		}

	case Back:
		switch s.Step {
		case EnteringContactInfo:
			next.Step = SelectingService
			next.Errors = map[string]string{}
		case EnteringServiceDetails:
			next.Step = EnteringContactInfo
			next.Errors = map[string]string{}
		}

	case Submit:
		if s.Step != EnteringServiceDetails {
			return next, nil
		}
		return submitHelp(next)
	}

	return next, nil
}

func submitHelp(next HelpState) (HelpState, *Effect) {
	schema, ok := forms.ServiceSchema(next.Service)
	if !ok {
		return next, nil
	}

	details := validation.Validate(next.Fields, schema)
	if !details.OK {
		next.Errors = details.Errors
		next.Notice = validationNotice(requiredMissing)
		return next, nil
	}

	contact := validation.Validate(subset(next.Fields, contactKeys...), forms.ContactInfo)
	if !contact.OK {
		next.Step = EnteringContactInfo
		next.Errors = contact.Errors
		next.Notice = validationNotice(fieldsNeedAttn)
		return next, nil
	}

	next.Errors = map[string]string{}
	next.InFlight = true

	c := contact.Data
	return next, &Effect{
		Endpoint: client.HelpRequest,
		Payload: models.HelpRequestPayload{
			ServiceType:    string(next.Service),
			FirstName:      str(c, "firstName"),
			LastName:       str(c, "lastName"),
			Email:          str(c, "email"),
			Phone:          str(c, "phone"),
			Address:        str(c, "address"),
			City:           str(c, "city"),
			State:          str(c, "state"),
			Zip:            str(c, "zip"),
			ServiceDetails: forms.ServiceDetails(next.Service, details.Data),
		},
	}
}

func resolveHelp(next HelpState, res client.Result) HelpState {
	next.InFlight = false
	if res.Success {
		next.Step = HelpSubmitted
		next.Submitted = true
		next.RequestID = res.ID
		return next
	}
	next.Notice = submissionNotice(res, helpSubmitFailed)
	return next
}
