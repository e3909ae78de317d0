package wizard

import (
	"cac-forms/internal/client"
	"cac-forms/internal/common/validation"
	"cac-forms/internal/forms"
	"cac-forms/internal/models"
)

// SupportKind is the branch chosen on the first support step.
type SupportKind string

const (
	SupportVolunteer SupportKind = "volunteer"
	SupportDonate    SupportKind = "donate"
)

// SupportStep is a state of the volunteer/donate wizard.
type SupportStep int

const (
	ChoosingSupport SupportStep = iota + 1
	ChoosingServiceArea
	EnteringVolunteerInfo
	EnteringDonation
	SupportSubmitted
)

func (s SupportStep) String() string {
	switch s {
	case ChoosingSupport:
		return "ChoosingSupport"
	case ChoosingServiceArea:
		return "ChoosingServiceArea"
	case EnteringVolunteerInfo:
		return "EnteringVolunteerInfo"
	case EnteringDonation:
		return "EnteringDonation"
	case SupportSubmitted:
		return "Submitted"
	default:
		return "Unknown"
	}
}

type SupportState struct {
	Step        SupportStep
	Kind        SupportKind
	ServiceArea string
	Fields      map[string]interface{}
	Errors      map[string]string
	InFlight    bool
	Submitted   bool
	Notice      *Notice
	// SubmissionID is the volunteer or donation id returned by the endpoint.
	SubmissionID int64
}

func NewSupport() SupportState {
	return SupportState{
		Step:   ChoosingSupport,
		Fields: map[string]interface{}{"availability": []string{}},
		Errors: map[string]string{},
	}
}

// Availability returns the selected days in selection order.
func (s SupportState) Availability() []string {
	days, _ := s.Fields["availability"].([]string)
	return days
}

// ReduceSupport applies ev to s. s is never modified.
func ReduceSupport(s SupportState, ev Event) (SupportState, *Effect) {
	next := s
	next.Fields = cloneFields(s.Fields)
	next.Errors = cloneErrors(s.Errors)
	next.Notice = nil

	if s.Step == SupportSubmitted {
		return next, nil
	}
	if s.InFlight {
		if r, ok := ev.(Resolved); ok {
			return resolveSupport(next, r.Result), nil
		}
		return next, nil
	}

	switch e := ev.(type) {
	case ChooseSupport:
		if s.Step == ChoosingSupport && (e.Kind == SupportVolunteer || e.Kind == SupportDonate) {
			next.Kind = e.Kind
		}

	case ChooseServiceArea:
		if s.Step == ChoosingServiceArea && contains(forms.ServiceAreas, e.Area) {
			next.ServiceArea = e.Area
		}

	case SetField:
		if s.Step != EnteringVolunteerInfo && s.Step != EnteringDonation {
			return next, nil
		}
		next.Fields[e.Name] = e.Value
		delete(next.Errors, e.Name)

	case ToggleDay:
		if s.Step != EnteringVolunteerInfo || !contains(forms.Weekdays, e.Day) {
			return next, nil
		}
		next.Fields["availability"] = toggle(next.Availability(), e.Day)
		delete(next.Errors, "availability")

	case ChooseAmount:
		if s.Step != EnteringDonation {
			return next, nil
		}
		next.Fields["amount"] = e.Amount
		delete(next.Errors, "amount")

	case Continue:
		switch {
		case s.Step == ChoosingSupport && s.Kind == SupportVolunteer:
			next.Step = ChoosingServiceArea
		case s.Step == ChoosingSupport && s.Kind == SupportDonate:
			next.Step = EnteringDonation
		case s.Step == ChoosingServiceArea && s.ServiceArea != "":
			next.Step = EnteringVolunteerInfo
		}

	case Back:
		next.Errors = map[string]string{}
		switch s.Step {
		case ChoosingServiceArea, EnteringDonation:
			next.Step = ChoosingSupport
		case EnteringVolunteerInfo:
			next.Step = ChoosingServiceArea
		}

	case Submit:
		switch s.Step {
		case EnteringVolunteerInfo:
			return submitVolunteer(next)
		case EnteringDonation:
			return submitDonation(next)
		}
	}

	return next, nil
}

func submitVolunteer(next SupportState) (SupportState, *Effect) {
	bag := subset(next.Fields, "name", "email", "phone", "availability", "experience", "message")
	res := validation.Validate(bag, forms.Volunteer)
	if !res.OK {
		next.Errors = res.Errors
		next.Notice = validationNotice(fieldsNeedAttn)
		return next, nil
	}

	next.Errors = map[string]string{}
	next.InFlight = true
	days, _ := res.Data["availability"].([]string)
	return next, &Effect{
		Endpoint: client.Volunteer,
		Payload: models.VolunteerPayload{
			Name:         str(res.Data, "name"),
			Email:        str(res.Data, "email"),
			Phone:        str(res.Data, "phone"),
			ServiceArea:  next.ServiceArea,
			Availability: days,
			Experience:   str(res.Data, "experience"),
			Message:      str(res.Data, "message"),
		},
	}
}

// finalAmount resolves the custom amount selection.
func (s SupportState) finalAmount() interface{} {
	amount := s.Fields["amount"]
	if a, ok := amount.(string); ok && (a == forms.CustomAmount || a == "Custom") {
		return s.Fields["customAmount"]
	}
	return amount
}

func submitDonation(next SupportState) (SupportState, *Effect) {
	bag := subset(next.Fields, "name", "email", "paymentMethod")
	if amount := next.finalAmount(); amount != nil {
		bag["amount"] = amount
	}

	res := validation.Validate(bag, forms.Donation)
	if _, failed := res.Errors["amount"]; !failed && bag["amount"] != nil {
		if _, err := forms.NormalizeAmount(res.Data["amount"]); err != nil {
			res.OK = false
			res.Errors["amount"] = invalidAmount
		}
	}
	if !res.OK {
		next.Errors = res.Errors
		next.Notice = validationNotice(fieldsNeedAttn)
		return next, nil
	}

	next.Errors = map[string]string{}
	next.InFlight = true
	return next, &Effect{
		Endpoint: client.Donation,
		Payload: models.DonationPayload{
			Name:          str(res.Data, "name"),
			Email:         str(res.Data, "email"),
			Amount:        str(res.Data, "amount"),
			PaymentMethod: str(res.Data, "paymentMethod"),
		},
	}
}

func resolveSupport(next SupportState, res client.Result) SupportState {
	next.InFlight = false
	if res.Success {
		next.Step = SupportSubmitted
		next.Submitted = true
		next.SubmissionID = res.ID
		return next
	}
	fallback := volunteerFailed
	if next.Kind == SupportDonate {
		fallback = donationFailed
	}
	next.Notice = submissionNotice(res, fallback)
	return next
}

func toggle(days []string, day string) []string {
	out := make([]string, 0, len(days)+1)
	removed := false
	for _, d := range days {
		if d == day {
			removed = true
			continue
		}
		out = append(out, d)
	}
	if !removed {
		out = append(out, day)
	}
	return out
}

func contains(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}
