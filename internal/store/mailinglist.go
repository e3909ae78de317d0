package store

import (
	"context"
	"database/sql"

	"cac-forms/internal/common/logger"
	"cac-forms/internal/models"
)

const insertSubscriber = `
	INSERT INTO subscribers (
		first_name, last_name, email, phone, wants_notifications, contact_preference
	) VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`

// MailingListStore holds subscribers. The email column is unique.
type MailingListStore struct {
	gateway
}

func NewMailingListStore(db *sql.DB, log logger.Logger) *MailingListStore {
	return &MailingListStore{gateway: newGateway(StoreMailingList, db, log)}
}

// InsertSubscriber returns DUPLICATE_SUBSCRIBER when the email is already stored.
func (s *MailingListStore) InsertSubscriber(ctx context.Context, sub *models.Subscriber) (int64, error) {
	id, err := s.insertReturningID(ctx, "subscribers", insertSubscriber, isDuplicateEmail,
		sub.FirstName,
		sub.LastName,
		sub.Email,
		sub.Phone,
		sub.WantsNotifications,
		sub.ContactPreference,
	)
	if err != nil {
		return 0, err
	}
	sub.ID = id
	return id, nil
}
