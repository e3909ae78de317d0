package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	apperrors "cac-forms/internal/common/errors"
	"cac-forms/internal/common/logger"
	"cac-forms/internal/common/metrics"
	"cac-forms/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func createTestHelpRequest() *models.HelpRequest {
	return &models.HelpRequest{
		ServiceType: "food",
		FirstName:   "Ana",
		LastName:    "Lopez",
		Email:       "a@b.com",
		Phone:       "(407) 555-0100",
		ServiceDetails: map[string]interface{}{
			"veteranBranch": "army",
			"veteranStatus": "veteran",
			"householdSize": "2",
		},
	}
}

func createTestSubscriber() *models.Subscriber {
	return &models.Subscriber{
		FirstName:          "Ana",
		LastName:           "Lopez",
		Email:              "ana@example.org",
		Phone:              "555 123 4567",
		WantsNotifications: true,
		ContactPreference:  "email",
	}
}

func returningID(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(id)
}

// ==========================
// Help requests
// ==========================

func TestInsertHelpRequest_Success(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO help_requests`).
		WithArgs(
			"food", "Ana", "Lopez", "a@b.com", "(407) 555-0100",
			"", "", "", "",
			`{"householdSize":"2","veteranBranch":"army","veteranStatus":"veteran"}`,
			models.StatusPending,
		).
		WillReturnRows(returningID(42))

	s := NewHelpRequestStore(db, logger.NewTestLogger(t))
	req := createTestHelpRequest()
	id, err := s.InsertHelpRequest(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, int64(42), req.ID)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertHelpRequest_NilDetailsStoredAsObject(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO help_requests`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "{}", sqlmock.AnyArg()).
		WillReturnRows(returningID(1))

	req := createTestHelpRequest()
	req.ServiceDetails = nil
	_, err := NewHelpRequestStore(db, logger.NewNoOpLogger()).InsertHelpRequest(context.Background(), req)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertHelpRequest_WriteFailed(t *testing.T) {
	db, mock := newMockDB(t)
	before := testutil.ToFloat64(metrics.StorageErrors.WithLabelValues(StoreHelp, string(apperrors.ErrCodeStorageWriteFailed)))

	mock.ExpectQuery(`INSERT INTO help_requests`).
		WillReturnError(errors.New(`relation "help_requests" does not exist`))

	_, err := NewHelpRequestStore(db, logger.NewTestLogger(t)).InsertHelpRequest(context.Background(), createTestHelpRequest())

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStorageWriteFailed))
	assert.Equal(t, apperrors.GenericStorageMessage, apperrors.From(err).Message)
	assert.Contains(t, apperrors.From(err).Details, "does not exist")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.StorageErrors.WithLabelValues(StoreHelp, string(apperrors.ErrCodeStorageWriteFailed))))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertHelpRequest_StorageUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectClose()
	require.NoError(t, db.Close())

	_, err := NewHelpRequestStore(db, logger.NewTestLogger(t)).InsertHelpRequest(context.Background(), createTestHelpRequest())

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStorageUnavailable))
	assert.False(t, apperrors.HasCode(err, apperrors.ErrCodeStorageWriteFailed))
}

func TestInsertHelpRequest_UniqueViolationIsWriteFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO help_requests`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "help_requests_pkey"})

	_, err := NewHelpRequestStore(db, logger.NewTestLogger(t)).InsertHelpRequest(context.Background(), createTestHelpRequest())

	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStorageWriteFailed))
}

// ==========================
// Support store
// ==========================

func TestInsertVolunteer_AvailabilityVerbatim(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO volunteers`).
		WithArgs("Sam", "sam@example.org", "", "food-pantry", `["Monday","Saturday","Monday"]`, "", "", models.StatusPending).
		WillReturnRows(returningID(7))

	app := &models.VolunteerApplication{
		Name:         "Sam",
		Email:        "sam@example.org",
		ServiceArea:  "food-pantry",
		Availability: []string{"Monday", "Saturday", "Monday"},
	}
	id, err := NewSupportStore(db, logger.NewTestLogger(t)).InsertVolunteer(context.Background(), app)

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertDonation_AmountRoundedToCents(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO donations`).
		WithArgs("", "", "25.50", "paypal", models.StatusPending).
		WillReturnRows(returningID(9))

	d := &models.Donation{Amount: 25.5, PaymentMethod: "paypal"}
	id, err := NewSupportStore(db, logger.NewTestLogger(t)).InsertDonation(context.Background(), d)

	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.Equal(t, int64(9), d.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Mailing list
// ==========================

func TestInsertSubscriber_Success(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO subscribers`).
		WithArgs("Ana", "Lopez", "ana@example.org", "555 123 4567", true, "email").
		WillReturnRows(returningID(3))

	id, err := NewMailingListStore(db, logger.NewTestLogger(t)).InsertSubscriber(context.Background(), createTestSubscriber())

	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSubscriber_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	before := testutil.ToFloat64(metrics.StorageErrors.WithLabelValues(StoreMailingList, string(apperrors.ErrCodeDuplicateSubscriber)))

	mock.ExpectQuery(`INSERT INTO subscribers`).
		WillReturnRows(returningID(3))
	mock.ExpectQuery(`INSERT INTO subscribers`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "subscribers_email_key"})

	s := NewMailingListStore(db, logger.NewTestLogger(t))
	_, err := s.InsertSubscriber(context.Background(), createTestSubscriber())
	require.NoError(t, err)

	_, err = s.InsertSubscriber(context.Background(), createTestSubscriber())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDuplicateSubscriber))
	assert.Equal(t, "This email is already subscribed", apperrors.From(err).Message)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.StorageErrors.WithLabelValues(StoreMailingList, string(apperrors.ErrCodeDuplicateSubscriber))))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSubscriber_OtherConstraintIsWriteFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO subscribers`).
		WillReturnError(&pq.Error{Code: "23502", Column: "phone"})

	_, err := NewMailingListStore(db, logger.NewTestLogger(t)).InsertSubscriber(context.Background(), createTestSubscriber())

	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStorageWriteFailed))
}

func TestGateway_PingAndName(t *testing.T) {
	db, _ := newMockDB(t)

	s := NewMailingListStore(db, logger.NewNoOpLogger())
	assert.Equal(t, StoreMailingList, s.Name())
	assert.NoError(t, s.Ping(context.Background()))
}
