package models

// Wire payloads posted by the submission client. Field names match the
// endpoint contracts.

type HelpRequestPayload struct {
	ServiceType    string                 `json:"service_type"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	Email          string                 `json:"email"`
	Phone          string                 `json:"phone"`
	Address        string                 `json:"address"`
	City           string                 `json:"city"`
	State          string                 `json:"state"`
	Zip            string                 `json:"zip"`
	ServiceDetails map[string]interface{} `json:"service_details"`
}

type VolunteerPayload struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	ServiceArea  string   `json:"service_area"`
	Availability []string `json:"availability"`
	Experience   string   `json:"experience"`
	Message      string   `json:"message"`
}

// DonationPayload carries the amount as the user entered or picked it, e.g. "$25".
type DonationPayload struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Amount        string `json:"amount"`
	PaymentMethod string `json:"payment_method"`
}

type MailingListPayload struct {
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	WantsNotifications bool   `json:"wants_notifications"`
	ContactPreference  string `json:"contact_preference"`
}
