package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Windi-Fikriyansyah/contadores/internal/apperr"
	"github.com/Windi-Fikriyansyah/contadores/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func accountantRow(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "specialty", "score", "rating_count", "tags", "active"}).
		AddRow(id, uuid.New(), "Ana Souza", "Contabilidade Fiscal", 4.0, 1, []byte(`["Fiscal"]`), true)
}

func TestAccountantFilter_BuildsConjunctiveQuery(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewAccountantRepository(gdb)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "accountants" WHERE active = $1 AND (specialty ILIKE $2 OR name ILIKE $3 OR description ILIKE $4) AND CAST(tags AS TEXT) ILIKE $5 ORDER BY created_at ASC`)).
		WithArgs(true, "%fiscal%", "%fiscal%", "%fiscal%", "%MEI%").
		WillReturnRows(accountantRow(uuid.New()))

	out, err := repo.Filter(context.Background(), " fiscal ", []string{"MEI", " "})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"Fiscal"}, out[0].TagList())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountantFilter_NoCriteria(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewAccountantRepository(gdb)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "accountants" WHERE active = $1 ORDER BY created_at ASC`)).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	out, err := repo.Filter(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingSubmit_RecomputesScore(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewRatingRepository(gdb)
	accID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "accountants" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(accountantRow(accID))
	mock.ExpectQuery(`SELECT \* FROM "ratings" WHERE accountant_id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO "ratings"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(value\), 0\) AS total, COUNT\(\*\) AS count FROM "ratings"`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "count"}).AddRow(9.0, 2))
	mock.ExpectExec(`UPDATE "accountants" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	acc, err := repo.Submit(context.Background(), &models.Rating{
		AccountantID: accID,
		UserID:       uuid.New(),
		Value:        5,
	})
	require.NoError(t, err)
	assert.Equal(t, 4.5, acc.Score)
	assert.Equal(t, int64(2), acc.RatingCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingSubmit_AlreadyRated(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewRatingRepository(gdb)
	accID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "accountants"`).
		WillReturnRows(accountantRow(accID))
	mock.ExpectQuery(`SELECT \* FROM "ratings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "value"}).AddRow(uuid.New(), 3.0))
	mock.ExpectRollback()

	_, err := repo.Submit(context.Background(), &models.Rating{AccountantID: accID, UserID: uuid.New(), Value: 4})
	assert.ErrorIs(t, err, apperr.ErrAlreadyRated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingSubmit_UnknownAccountant(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewRatingRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "accountants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.Submit(context.Background(), &models.Rating{AccountantID: uuid.New(), UserID: uuid.New(), Value: 4})
	assert.ErrorIs(t, err, apperr.ErrAccountantNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProposalRespond_OnlyFromPending(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewProposalRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "proposals" SET .* WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	p := &models.Proposal{ID: uuid.New(), Status: models.ProposalAccepted}
	err := repo.Respond(context.Background(), p, models.ProposalDeclined, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	assert.Equal(t, models.ProposalAccepted, p.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProposalRespond_Accepts(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewProposalRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "proposals" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p := &models.Proposal{ID: uuid.New(), Status: models.ProposalPending}
	require.NoError(t, repo.Respond(context.Background(), p, models.ProposalAccepted, "Vamos conversar"))
	assert.Equal(t, models.ProposalAccepted, p.Status)
	assert.Equal(t, "Vamos conversar", p.Response)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageCountUnread(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewMessageRepository(gdb)
	me := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "messages" WHERE receiver_id = $1 AND read = $2`)).
		WithArgs(me, false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountUnread(context.Background(), me)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
