package store

import (
	"context"
	"database/sql"

	apperrors "cac-forms/internal/common/errors"
	"cac-forms/internal/common/logger"
	"cac-forms/internal/forms"
	"cac-forms/internal/models"
)

const (
	insertVolunteer = `
		INSERT INTO volunteers (
			name, email, phone, service_area, availability, experience, message, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	insertDonation = `
		INSERT INTO donations (name, email, amount, payment_method, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
)

// SupportStore holds volunteer applications and donations.
type SupportStore struct {
	gateway
}

func NewSupportStore(db *sql.DB, log logger.Logger) *SupportStore {
	return &SupportStore{gateway: newGateway(StoreSupport, db, log)}
}

// InsertVolunteer stores app with its availability verbatim, in order.
func (s *SupportStore) InsertVolunteer(ctx context.Context, app *models.VolunteerApplication) (int64, error) {
	availability := app.Availability
	if availability == nil {
		availability = []string{}
	}
	availabilityJSON, err := jsonb(availability)
	if err != nil {
		return 0, apperrors.NewStorageWriteFailedError(s.name, err)
	}

	app.Status = models.StatusPending
	id, err := s.insertReturningID(ctx, "volunteers", insertVolunteer, nil,
		app.Name,
		app.Email,
		app.Phone,
		app.ServiceArea,
		availabilityJSON,
		app.Experience,
		app.Message,
		app.Status,
	)
	if err != nil {
		return 0, err
	}
	app.ID = id
	return id, nil
}

// InsertDonation stores d with the amount rounded to cents.
func (s *SupportStore) InsertDonation(ctx context.Context, d *models.Donation) (int64, error) {
	d.Status = models.StatusPending
	id, err := s.insertReturningID(ctx, "donations", insertDonation, nil,
		d.Name,
		d.Email,
		forms.FormatAmount(d.Amount),
		d.PaymentMethod,
		d.Status,
	)
	if err != nil {
		return 0, err
	}
	d.ID = id
	return id, nil
}
