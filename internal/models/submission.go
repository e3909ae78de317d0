package models

import "time"

// StatusPending is the initial status of every stored submission.
const StatusPending = "pending"

// HelpRequest is a person asking for GED, career or food assistance.
type HelpRequest struct {
	ID             int64                  `json:"id,omitempty"`
	ServiceType    string                 `json:"service_type"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	Email          string                 `json:"email"`
	Phone          string                 `json:"phone"`
	Address        string                 `json:"address,omitempty"`
	City           string                 `json:"city,omitempty"`
	State          string                 `json:"state,omitempty"`
	Zip            string                 `json:"zip,omitempty"`
	ServiceDetails map[string]interface{} `json:"service_details"`
	Status         string                 `json:"status"`
	CreatedAt      time.Time              `json:"created_at,omitempty"`
}

// VolunteerApplication is an offer to help in one service area.
type VolunteerApplication struct {
	ID           int64     `json:"id,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	ServiceArea  string    `json:"service_area,omitempty"`
	Availability []string  `json:"availability"`
	Experience   string    `json:"experience,omitempty"`
	Message      string    `json:"message,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Donation is a pledged amount with the chosen payment method.
type Donation struct {
	ID            int64     `json:"id,omitempty"`
	Name          string    `json:"name,omitempty"`
	Email         string    `json:"email,omitempty"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// Subscriber is a mailing-list member; Email is unique in the store.
type Subscriber struct {
	ID                 int64     `json:"id,omitempty"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	WantsNotifications bool      `json:"wants_notifications"`
	ContactPreference  string    `json:"contact_preference"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
}
