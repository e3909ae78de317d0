// internal/submissions/donation/handler.go
package donation

import (
	"context"
	"fmt"

	apperrors "cac-forms/internal/common/errors"
	"cac-forms/internal/common/notify"
	"cac-forms/internal/forms"
	"cac-forms/internal/models"
	"cac-forms/internal/submissions"
	"cac-forms/pkg/registry"
)

// Store persists donations.
type Store interface {
	InsertDonation(ctx context.Context, d *models.Donation) (int64, error)
}

type Handler struct {
	*submissions.Endpoint
	store Store
}

func NewHandler(store Store, deps submissions.Deps) *Handler {
	h := &Handler{store: store}
	h.Endpoint = submissions.NewEndpoint(registry.MustFind(registry.FlowDonation), deps, h.Process)
	return h
}

// Process validates a decoded body, normalizes the display amount and stores
// the donation.
func (h *Handler) Process(ctx context.Context, doc map[string]interface{}) (submissions.Stored, error) {
	data, err := submissions.CheckFields(InputSchema(), fieldSchema, doc, missingMessage)
	if err != nil {
		return submissions.Stored{}, err
	}

	// The raw value keeps numeric amounts numeric, so -5 is rejected rather
	// than stripped to 5.
	amount, err := forms.NormalizeAmount(doc["amount"])
	if err != nil {
		return submissions.Stored{}, apperrors.NewInvalidInputError(requiredMessage, map[string]string{
			"amount": "Amount must be a positive number",
		})
	}

	d := &models.Donation{
		Name:          submissions.String(data, "name"),
		Email:         submissions.String(data, "email"),
		Amount:        amount,
		PaymentMethod: submissions.String(data, "payment_method"),
	}

	id, err := h.store.InsertDonation(ctx, d)
	if err != nil {
		return submissions.Stored{}, err
	}

	donor := d.Name
	if donor == "" {
		donor = "anonymous donor"
	}
	return submissions.Stored{
		ID: id,
		Alert: notify.Alert{
			Summary: fmt.Sprintf("$%s via %s from %s", forms.FormatAmount(d.Amount), d.PaymentMethod, donor),
		},
	}, nil
}
