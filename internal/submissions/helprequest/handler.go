// internal/submissions/helprequest/handler.go
package helprequest

import (
	"context"
	"fmt"

	"cac-forms/internal/common/notify"
	"cac-forms/internal/models"
	"cac-forms/internal/submissions"
	"cac-forms/pkg/registry"
)

// Store persists help requests.
type Store interface {
	InsertHelpRequest(ctx context.Context, req *models.HelpRequest) (int64, error)
}

type Handler struct {
	*submissions.Endpoint
	store Store
}

func NewHandler(store Store, deps submissions.Deps) *Handler {
	h := &Handler{store: store}
	h.Endpoint = submissions.NewEndpoint(registry.MustFind(registry.FlowHelpRequest), deps, h.Process)
	return h
}

// Process validates a decoded body and stores the help request.
func (h *Handler) Process(ctx context.Context, doc map[string]interface{}) (submissions.Stored, error) {
	data, err := submissions.CheckFields(InputSchema(), fieldSchema, doc, submissions.ListMissing)
	if err != nil {
		return submissions.Stored{}, err
	}

	req := &models.HelpRequest{
		ServiceType:    submissions.String(data, "service_type"),
		FirstName:      submissions.String(data, "first_name"),
		LastName:       submissions.String(data, "last_name"),
		Email:          submissions.String(data, "email"),
		Phone:          submissions.String(data, "phone"),
		Address:        submissions.String(data, "address"),
		City:           submissions.String(data, "city"),
		State:          submissions.String(data, "state"),
		Zip:            submissions.String(data, "zip"),
		ServiceDetails: submissions.Object(data, "service_details"),
	}

	id, err := h.store.InsertHelpRequest(ctx, req)
	if err != nil {
		return submissions.Stored{}, err
	}

	return submissions.Stored{
		ID: id,
		Alert: notify.Alert{
			Summary: fmt.Sprintf("%s request from %s %s (%s, %s)",
				req.ServiceType, req.FirstName, req.LastName, req.Email, req.Phone),
			Urgent: true,
		},
	}, nil
}
