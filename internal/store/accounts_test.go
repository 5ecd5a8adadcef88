package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/jemaat/internal/db/dbtest"
	"github.com/vaughan-dsouza/jemaat/internal/models"
)

func TestAccounts_LinkLookupUnlink(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.NewSQLite(t)
	users := NewUsers(conn)
	accounts := NewAccounts(conn)

	u := newUser("ana@example.com", base)
	require.NoError(t, users.Create(ctx, u))

	acc := &models.Account{
		ID: uuid.NewString(), UserID: u.ID, Provider: "github",
		Type: "oauth", ProviderAccountID: "gh-42", CreatedAt: base,
	}
	require.NoError(t, accounts.Link(ctx, acc))

	dup := *acc
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, accounts.Link(ctx, &dup), ErrDuplicate)

	owner, err := accounts.UserByAccount(ctx, "github", "gh-42")
	require.NoError(t, err)
	assert.Equal(t, u.ID, owner.ID)

	_, err = accounts.UserByAccount(ctx, "gitlab", "gh-42")
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := accounts.Unlink(ctx, "github", "gh-42")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = accounts.Unlink(ctx, "github", "gh-42")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestVerificationTokens_SingleUse(t *testing.T) {
	ctx := context.Background()
	r := NewVerificationTokens(dbtest.NewSQLite(t))

	expires := base.Add(24 * time.Hour)
	require.NoError(t, r.Create(ctx, &models.VerificationToken{
		Identifier: "ana@example.com", Token: "abc", Expires: expires,
	}))
	assert.ErrorIs(t, r.Create(ctx, &models.VerificationToken{
		Identifier: "ana@example.com", Token: "abc", Expires: expires,
	}), ErrDuplicate)

	vt, err := r.Use(ctx, "ana@example.com", "abc")
	require.NoError(t, err)
	assert.True(t, vt.Expires.Equal(expires))

	_, err = r.Use(ctx, "ana@example.com", "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}
