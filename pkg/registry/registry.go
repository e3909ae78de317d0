// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	FlowHelpRequest = "help-request"
	FlowVolunteer   = "volunteer"
	FlowDonation    = "donation"
	FlowMailingList = "mailing-list"
)

const defaultVersion = "1.0.0"

var defaultFlows = []Flow{
	{
		ID:             FlowHelpRequest,
		DisplayName:    "Help Request",
		Description:    "Request for GED, career or food assistance",
		Path:           "/api/help-request",
		Aliases:        []string{"/api/help-request.php"},
		Store:          "help",
		IDField:        "request_id",
		SuccessMessage: "Help request submitted successfully",
		RequiredFields: []string{"service_type", "first_name", "last_name", "email", "phone"},
		ErrorCodes:     []string{"INVALID_INPUT", "METHOD_NOT_ALLOWED", "STORAGE_UNAVAILABLE", "STORAGE_WRITE_FAILED"},
		Tags:           []string{"help"},
	},
	{
		ID:             FlowVolunteer,
		DisplayName:    "Volunteer Application",
		Description:    "Offer to volunteer in a service area",
		Path:           "/api/volunteer",
		Aliases:        []string{"/api/volunteer.php"},
		Store:          "support",
		IDField:        "volunteer_id",
		SuccessMessage: "Volunteer application submitted successfully",
		RequiredFields: []string{"name", "email", "availability"},
		ErrorCodes:     []string{"INVALID_INPUT", "METHOD_NOT_ALLOWED", "STORAGE_UNAVAILABLE", "STORAGE_WRITE_FAILED"},
		Tags:           []string{"support"},
	},
	{
		ID:             FlowDonation,
		DisplayName:    "Donation",
		Description:    "Donation pledge with payment method",
		Path:           "/api/donation",
		Aliases:        []string{"/api/donation.php"},
		Store:          "support",
		IDField:        "donation_id",
		SuccessMessage: "Donation recorded successfully",
		RequiredFields: []string{"amount", "payment_method"},
		ErrorCodes:     []string{"INVALID_INPUT", "METHOD_NOT_ALLOWED", "STORAGE_UNAVAILABLE", "STORAGE_WRITE_FAILED"},
		Tags:           []string{"support"},
	},
	{
		ID:             FlowMailingList,
		DisplayName:    "Mailing List",
		Description:    "Community mailing list subscription",
		Path:           "/api/mailing-list",
		Aliases:        []string{"/api/mailing-list.php"},
		Store:          "mailing_list",
		IDField:        "subscriber_id",
		SuccessMessage: "Successfully subscribed to the community!",
		RequiredFields: []string{"first_name", "last_name", "email", "phone"},
		ErrorCodes:     []string{"INVALID_INPUT", "METHOD_NOT_ALLOWED", "DUPLICATE_SUBSCRIBER", "STORAGE_UNAVAILABLE", "STORAGE_WRITE_FAILED"},
		Tags:           []string{"mailing"},
	},
}

// Default returns a fresh copy of the built-in flow registry.
func Default() *FlowRegistry {
	flows := make([]Flow, len(defaultFlows))
	for i, f := range defaultFlows {
		f.Aliases = append([]string(nil), f.Aliases...)
		f.RequiredFields = append([]string(nil), f.RequiredFields...)
		f.ErrorCodes = append([]string(nil), f.ErrorCodes...)
		f.Tags = append([]string(nil), f.Tags...)
		flows[i] = f
	}
	return &FlowRegistry{Version: defaultVersion, Flows: flows}
}

// MustFind returns a built-in flow and panics for unknown ids.
func MustFind(id string) Flow {
	f, ok := Default().Find(id)
	if !ok {
		panic(fmt.Sprintf("registry: unknown flow %q", id))
	}
	return f
}

func LoadRegistry(path string) (*FlowRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg FlowRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Save writes reg as indented JSON, creating the directory when needed.
func Save(reg *FlowRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func (r *FlowRegistry) Find(id string) (Flow, bool) {
	for _, f := range r.Flows {
		if f.ID == id {
			return f, true
		}
	}
	return Flow{}, false
}

// Validate checks ids, paths and id fields for presence and uniqueness.
func (r *FlowRegistry) Validate() error {
	if len(r.Flows) == 0 {
		return fmt.Errorf("registry contains no flows")
	}

	ids := make(map[string]bool)
	paths := make(map[string]string)
	for _, f := range r.Flows {
		if f.ID == "" {
			return fmt.Errorf("flow missing required field: ID")
		}
		if ids[f.ID] {
			return fmt.Errorf("duplicate flow ID: %s", f.ID)
		}
		ids[f.ID] = true

		if f.DisplayName == "" {
			return fmt.Errorf("flow %s missing required field: DisplayName", f.ID)
		}
		if f.Store == "" {
			return fmt.Errorf("flow %s missing required field: Store", f.ID)
		}
		if f.IDField == "" || !strings.HasSuffix(f.IDField, "_id") {
			return fmt.Errorf("flow %s has invalid IDField %q", f.ID, f.IDField)
		}

		for _, p := range append([]string{f.Path}, f.Aliases...) {
			if !strings.HasPrefix(p, "/") {
				return fmt.Errorf("flow %s has invalid path %q", f.ID, p)
			}
			if owner, ok := paths[p]; ok {
				return fmt.Errorf("path %s is used by both %s and %s", p, owner, f.ID)
			}
			paths[p] = f.ID
		}
	}
	return nil
}
