// internal/submissions/volunteer/handler.go
package volunteer

import (
	"context"
	"fmt"
	"strings"

	"cac-forms/internal/common/notify"
	"cac-forms/internal/models"
	"cac-forms/internal/submissions"
	"cac-forms/pkg/registry"
)

// Store persists volunteer applications.
type Store interface {
	InsertVolunteer(ctx context.Context, app *models.VolunteerApplication) (int64, error)
}

type Handler struct {
	*submissions.Endpoint
	store Store
}

func NewHandler(store Store, deps submissions.Deps) *Handler {
	h := &Handler{store: store}
	h.Endpoint = submissions.NewEndpoint(registry.MustFind(registry.FlowVolunteer), deps, h.Process)
	return h
}

// Process validates a decoded body and stores the application. Availability
// is kept in the submitted order.
func (h *Handler) Process(ctx context.Context, doc map[string]interface{}) (submissions.Stored, error) {
	data, err := submissions.CheckFields(InputSchema(), fieldSchema, doc, missingMessage)
	if err != nil {
		return submissions.Stored{}, err
	}

	app := &models.VolunteerApplication{
		Name:         submissions.String(data, "name"),
		Email:        submissions.String(data, "email"),
		Phone:        submissions.String(data, "phone"),
		ServiceArea:  submissions.String(data, "service_area"),
		Availability: submissions.Strings(data, "availability"),
		Experience:   submissions.String(data, "experience"),
		Message:      submissions.String(data, "message"),
	}

	id, err := h.store.InsertVolunteer(ctx, app)
	if err != nil {
		return submissions.Stored{}, err
	}

	return submissions.Stored{
		ID: id,
		Alert: notify.Alert{
			Summary: fmt.Sprintf("%s <%s> for %s, available %s",
				app.Name, app.Email, areaOrAny(app.ServiceArea), strings.Join(app.Availability, ", ")),
		},
	}, nil
}

func areaOrAny(area string) string {
	if area == "" {
		return "any area"
	}
	return area
}
