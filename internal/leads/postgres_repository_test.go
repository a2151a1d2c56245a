package leads

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresFindByPhone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT phone, name, status, created_at, updated_at, last_message").
		WithArgs("972501234567").
		WillReturnRows(pgxmock.NewRows([]string{"phone", "name", "status", "created_at", "updated_at", "last_message"}).
			AddRow("972501234567", "", StatusNew, now, now, "hello"))

	repo := newPostgresRepositoryWithQuerier(mock)
	lead, _, err := repo.FindByPhone(context.Background(), "972501234567")
	require.NoError(t, err)
	assert.Equal(t, "972501234567", lead.Phone)
	assert.Equal(t, StatusNew, lead.Status)
	assert.Equal(t, "hello", lead.LastMessage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindByPhoneNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT phone, name, status").
		WithArgs("972500000000").
		WillReturnError(pgx.ErrNoRows)

	repo := newPostgresRepositoryWithQuerier(mock)
	_, _, err = repo.FindByPhone(context.Background(), "972500000000")
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestPostgresAppend(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	lead := &Lead{Phone: "972501234567", Status: StatusNew, CreatedAt: now, UpdatedAt: now, LastMessage: "hi"}

	mock.ExpectExec("INSERT INTO leads").
		WithArgs(lead.Phone, lead.Name, lead.Status, lead.CreatedAt, lead.UpdatedAt, lead.LastMessage).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := newPostgresRepositoryWithQuerier(mock)
	require.NoError(t, repo.Append(context.Background(), lead))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateTouchesOnlyMutableColumns(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	lead := &Lead{Phone: "972501234567", UpdatedAt: now, LastMessage: "latest"}

	mock.ExpectExec(`UPDATE leads\s+SET updated_at = \$2, last_message = \$3\s+WHERE phone = \$1`).
		WithArgs(lead.Phone, lead.UpdatedAt, lead.LastMessage).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := newPostgresRepositoryWithQuerier(mock)
	require.NoError(t, repo.Update(context.Background(), 0, lead))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE leads").
		WithArgs("972500000000", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := newPostgresRepositoryWithQuerier(mock)
	err = repo.Update(context.Background(), 0, &Lead{Phone: "972500000000"})
	assert.ErrorIs(t, err, ErrLeadNotFound)
}
