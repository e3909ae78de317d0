package store

import (
	"context"
	"database/sql"

	apperrors "cac-forms/internal/common/errors"
	"cac-forms/internal/common/logger"
	"cac-forms/internal/models"
)

const insertHelpRequest = `
	INSERT INTO help_requests (
		service_type, first_name, last_name, email, phone,
		address, city, state, zip, service_details, status
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id`

// HelpRequestStore writes to the help-request store.
type HelpRequestStore struct {
	gateway
}

func NewHelpRequestStore(db *sql.DB, log logger.Logger) *HelpRequestStore {
	return &HelpRequestStore{gateway: newGateway(StoreHelp, db, log)}
}

// InsertHelpRequest stores req with status pending and returns its id.
func (s *HelpRequestStore) InsertHelpRequest(ctx context.Context, req *models.HelpRequest) (int64, error) {
	details := req.ServiceDetails
	if details == nil {
		details = map[string]interface{}{}
	}
	detailsJSON, err := jsonb(details)
	if err != nil {
		return 0, apperrors.NewStorageWriteFailedError(s.name, err)
	}

	req.Status = models.StatusPending
	id, err := s.insertReturningID(ctx, "help_requests", insertHelpRequest, nil,
		req.ServiceType,
		req.FirstName,
		req.LastName,
		req.Email,
		req.Phone,
		req.Address,
		req.City,
		req.State,
		req.Zip,
		detailsJSON,
		req.Status,
	)
	if err != nil {
		return 0, err
	}
	req.ID = id
	return id, nil
}
