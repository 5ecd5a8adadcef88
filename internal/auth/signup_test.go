package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/store"
)

func TestSignUp_FailedLinkLeavesNoUser(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	conn := sqlx.NewDb(raw, "sqlmock")

	svc := NewService(store.NewUsers(conn), store.NewAccounts(conn), store.NewVerificationTokens(conn),
		NewTokens("test-secret", 0), logging.Discard())

	noRows := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"id"}) }

	mock.ExpectQuery("FROM users WHERE email").WillReturnRows(noRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO auth_accounts").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err = svc.SignUp(context.Background(), SignUpInput{Email: "ana@example.com", Password: "rahasia"})
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))

	// The retry sees no leftover row and succeeds instead of reporting a conflict.
	mock.ExpectQuery("FROM users WHERE email").WillReturnRows(noRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO auth_accounts").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u, err := svc.SignUp(context.Background(), SignUpInput{Email: "ana@example.com", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)

	assert.NoError(t, mock.ExpectationsWereMet())
}
