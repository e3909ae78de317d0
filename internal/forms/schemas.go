// Package forms declares the named client-side schemas of the website forms.
package forms

import (
	"strconv"

	"cac-forms/internal/common/validation"
)

const (
	emailMessage = "Please enter a valid email address"
	phoneMessage = "Please enter a valid phone number"
)

// Schema names accepted by Lookup.
const (
	SchemaContact     = "contact"
	SchemaGED         = "ged"
	SchemaCareer      = "career"
	SchemaFood        = "food"
	SchemaVolunteer   = "volunteer"
	SchemaDonation    = "donation"
	SchemaMailingList = "mailing-list"
)

// Weekdays is the availability vocabulary of the volunteer form.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// PaymentMethods accepted for donations.
var PaymentMethods = []string{"card", "paypal", "venmo", "zelle", "check"}

// ContactPreferences accepted for mailing-list signups.
var ContactPreferences = []string{"email", "text", "both"}

// ServiceAreas a volunteer can choose from.
var ServiceAreas = []string{"food-pantry", "ged-classes", "career-development"}

func text(name string, max int, label string) validation.Field {
	return validation.Field{
		Name:       name,
		Kind:       validation.KindString,
		Max:        max,
		MaxMessage: label + " must be less than " + strconv.Itoa(max) + " characters",
	}
}

func requiredText(name string, max int, label string) validation.Field {
	f := text(name, max, label)
	f.Required = true
	f.Message = label + " is required"
	return f
}

// ContactInfo is step 2 of the help-request wizard.
var ContactInfo = validation.Schema{
	Name: SchemaContact,
	Fields: []validation.Field{
		requiredText("firstName", 50, "First name"),
		requiredText("lastName", 50, "Last name"),
		{Name: "email", Kind: validation.KindEmail, Required: true, Max: 100,
			Message: "Email is required", FormatMessage: emailMessage,
			MaxMessage: "Email must be less than 100 characters"},
		{Name: "phone", Kind: validation.KindPhone, Required: true,
			Message: "Phone number is required", FormatMessage: phoneMessage},
		text("address", 200, "Address"),
		text("city", 100, "City"),
		text("state", 50, "State"),
		text("zip", 20, "ZIP code"),
	},
}

// GED collects education details for the GED program.
var GED = validation.Schema{
	Name: SchemaGED,
	Fields: []validation.Field{
		{Name: "currentEducation", Kind: validation.KindString, Required: true, Max: 100,
			Message: "Please select your current education level"},
		text("desiredGradDate", 50, "Desired graduation date"),
		text("strongestSubject", 100, "Strongest subject"),
		text("weakestSubject", 100, "Weakest subject"),
		text("studyAvailability", 200, "Study availability"),
		text("gedGoals", 1000, "Goals"),
	},
}

// Career collects goals for career development coaching.
var Career = validation.Schema{
	Name: SchemaCareer,
	Fields: []validation.Field{
		text("desiredJob", 200, "Desired job"),
		text("shortTermGoals", 500, "Short-term goals"),
		text("midTermGoals", 500, "Mid-term goals"),
		text("longTermGoals", 500, "Long-term goals"),
		text("currentQualifications", 1000, "Current qualifications"),
		text("perceivedNeeds", 1000, "Perceived needs"),
	},
}

// Food collects veteran and household details for the food pantry.
var Food = validation.Schema{
	Name: SchemaFood,
	Fields: []validation.Field{
		{Name: "veteranBranch", Kind: validation.KindString, Required: true, Max: 50,
			Message: "Please select your branch of service"},
		{Name: "veteranStatus", Kind: validation.KindString, Required: true, Max: 50,
			Message: "Please select your veteran status"},
		text("householdSize", 10, "Household size"),
		text("dietaryRestrictions", 500, "Dietary restrictions"),
		text("foodNeeds", 1000, "Food needs"),
		text("preferredPickupLocation", 200, "Preferred pickup location"),
	},
}

// Volunteer is the volunteer information step of the support wizard.
var Volunteer = validation.Schema{
	Name: SchemaVolunteer,
	Fields: []validation.Field{
		requiredText("name", 100, "Name"),
		{Name: "email", Kind: validation.KindEmail, Required: true, Max: 100,
			Message: "Email is required", FormatMessage: emailMessage},
		{Name: "phone", Kind: validation.KindPhone, FormatMessage: phoneMessage},
		{Name: "availability", Kind: validation.KindCollection, Required: true, Options: Weekdays,
			Message: "Please select at least one day of availability", FormatMessage: "Please choose days of the week"},
		text("experience", 2000, "Experience"),
		text("message", 1000, "Message"),
	},
	Defaults: map[string]interface{}{
		"availability": []string{},
	},
}

// Donation is the donation step of the support wizard; amount is the display string.
var Donation = validation.Schema{
	Name: SchemaDonation,
	Fields: []validation.Field{
		text("name", 100, "Name"),
		{Name: "email", Kind: validation.KindEmail, Max: 100, FormatMessage: emailMessage},
		{Name: "amount", Kind: validation.KindString, Required: true, Max: 20,
			Message: "Please select or enter an amount"},
		{Name: "paymentMethod", Kind: validation.KindEnum, Required: true, Options: PaymentMethods,
			Message: "Please select a payment method", FormatMessage: "Please select a payment method"},
	},
}

// MailingList is the join-the-community signup form.
var MailingList = validation.Schema{
	Name: SchemaMailingList,
	Fields: []validation.Field{
		requiredText("firstName", 50, "First name"),
		requiredText("lastName", 50, "Last name"),
		{Name: "email", Kind: validation.KindEmail, Required: true, Max: 100,
			Message: "Email is required", FormatMessage: emailMessage},
		{Name: "phone", Kind: validation.KindPhone, Required: true,
			Message: "Phone number is required", FormatMessage: "Please enter a valid phone number (10-20 digits)"},
		{Name: "wantsNotifications", Kind: validation.KindBool},
		{Name: "contactPreference", Kind: validation.KindEnum, Options: ContactPreferences,
			FormatMessage: "Please choose email, text, or both"},
	},
	Defaults: map[string]interface{}{
		"wantsNotifications": true,
		"contactPreference":  "email",
	},
}

var registry = map[string]validation.Schema{
	SchemaContact:     ContactInfo,
	SchemaGED:         GED,
	SchemaCareer:      Career,
	SchemaFood:        Food,
	SchemaVolunteer:   Volunteer,
	SchemaDonation:    Donation,
	SchemaMailingList: MailingList,
}

// Lookup returns the schema registered under name.
func Lookup(name string) (validation.Schema, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names lists every registered schema name in a stable order.
func Names() []string {
	return []string{SchemaContact, SchemaGED, SchemaCareer, SchemaFood, SchemaVolunteer, SchemaDonation, SchemaMailingList}
}
