// internal/submissions/mailinglist/handler.go
package mailinglist

import (
	"context"
	"fmt"

	"cac-forms/internal/common/notify"
	"cac-forms/internal/models"
	"cac-forms/internal/submissions"
	"cac-forms/pkg/registry"
)

// Store persists subscribers. A repeated email must fail with
// DUPLICATE_SUBSCRIBER.
type Store interface {
	InsertSubscriber(ctx context.Context, sub *models.Subscriber) (int64, error)
}

type Handler struct {
	*submissions.Endpoint
	store Store
}

func NewHandler(store Store, deps submissions.Deps) *Handler {
	h := &Handler{store: store}
	h.Endpoint = submissions.NewEndpoint(registry.MustFind(registry.FlowMailingList), deps, h.Process)
	return h
}

// Process validates a decoded body and stores the subscriber.
func (h *Handler) Process(ctx context.Context, doc map[string]interface{}) (submissions.Stored, error) {
	data, err := submissions.CheckFields(InputSchema(), fieldSchema, doc, submissions.ListMissing)
	if err != nil {
		return submissions.Stored{}, err
	}

	pref := submissions.String(data, "contact_preference")
	if pref == "" {
		pref = defaultContactPreference
	}

	sub := &models.Subscriber{
		FirstName:          submissions.String(data, "first_name"),
		LastName:           submissions.String(data, "last_name"),
		Email:              submissions.String(data, "email"),
		Phone:              submissions.String(data, "phone"),
		WantsNotifications: submissions.Bool(data, "wants_notifications"),
		ContactPreference:  pref,
	}

	id, err := h.store.InsertSubscriber(ctx, sub)
	if err != nil {
		return submissions.Stored{}, err
	}

	return submissions.Stored{
		ID: id,
		Alert: notify.Alert{
			Summary: fmt.Sprintf("%s %s <%s> prefers %s", sub.FirstName, sub.LastName, sub.Email, sub.ContactPreference),
		},
	}, nil
}
