package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn_ConcurrentLatestWins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.svc.SignUp(ctx, SignUpInput{Email: "ana@example.com", Password: "rahasia"})
	require.NoError(t, err)

	const n = 8
	tokens := make([]string, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := f.svc.SignIn(ctx, "ana@example.com", "rahasia")
			errs[i] = err
			if err == nil {
				tokens[i] = s.Token
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	stored, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, stored.APIToken.Valid)

	valid := 0
	for _, tok := range tokens {
		if _, err := f.svc.Authenticate(ctx, tok); err == nil {
			valid++
			assert.Equal(t, stored.APIToken.String, tok)
		}
	}
	assert.Equal(t, 1, valid, "exactly one concurrent sign-in keeps a usable token")
}
