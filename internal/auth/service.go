// Package auth implements credential sign-in and sign-up, bearer token issue
// and validation, provider account linkage and single-use verification tokens.
package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/models"
	"github.com/vaughan-dsouza/jemaat/internal/store"
)

// bcrypt ignores input past 72 bytes; longer passwords are rejected.
const maxPasswordBytes = 72

type UserStore interface {
	CreateWithAccount(ctx context.Context, u *models.User, a *models.Account) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
	SetToken(ctx context.Context, id string, token sql.NullString) error
}

type AccountStore interface {
	Link(ctx context.Context, a *models.Account) error
	Unlink(ctx context.Context, provider, providerAccountID string) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.Account, error)
	UserByAccount(ctx context.Context, provider, providerAccountID string) (*models.User, error)
}

type VerificationStore interface {
	Create(ctx context.Context, vt *models.VerificationToken) error
	Use(ctx context.Context, identifier, token string) (*models.VerificationToken, error)
}

type Service struct {
	users         UserStore
	accounts      AccountStore
	verifications VerificationStore
	tokens        *Tokens
	log           logging.Logger
	now           func() time.Time
}

func NewService(users UserStore, accounts AccountStore, verifications VerificationStore, tokens *Tokens, log logging.Logger) *Service {
	return &Service{
		users:         users,
		accounts:      accounts,
		verifications: verifications,
		tokens:        tokens,
		log:           log,
		now:           time.Now,
	}
}

// Session is the result of a successful sign-in.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// SignIn verifies the credentials and issues a new token, replacing any
// previous one. Unknown email and wrong password are indistinguishable.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, apperr.Storage("get user by email", err)
	}

	hash, err := s.passwordHash(ctx, u)
	if err != nil {
		return nil, err
	}
	if hash == "" || !CheckPassword(hash, password) {
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return nil, apperr.Storage("generate token", err)
	}
	if err := s.users.SetToken(ctx, u.ID, sql.NullString{String: token, Valid: true}); err != nil {
		return nil, apperr.Storage("store token", err)
	}

	s.log.Info(ctx, "user signed in", "user_id", u.ID)
	return &Session{Token: token, User: u.Public()}, nil
}

// passwordHash returns the user's hash, falling back to the credentials
// account for users created through account linking.
func (s *Service) passwordHash(ctx context.Context, u *models.User) (string, error) {
	if u.PasswordHash.Valid && u.PasswordHash.String != "" {
		return u.PasswordHash.String, nil
	}

	accounts, err := s.accounts.ListByUser(ctx, u.ID)
	if err != nil {
		return "", apperr.Storage("list accounts", err)
	}
	for _, a := range accounts {
		if a.Provider == models.ProviderCredentials && a.PasswordHash.Valid {
			return a.PasswordHash.String, nil
		}
	}
	return "", nil
}

type SignUpInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp creates a user with role "user" plus its credentials account in one
// transaction. No token is issued.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperr.Validation("email and password required")
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, apperr.Validation("password must be at most %d bytes", maxPasswordBytes)
	}

	switch _, err := s.users.GetByEmail(ctx, email); {
	case err == nil:
		return nil, apperr.ErrEmailTaken
	case !errors.Is(err, store.ErrNotFound):
		return nil, apperr.Storage("get user by email", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Storage("hash password", err)
	}

	now := s.now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Name:         sql.NullString{String: strings.TrimSpace(in.Name), Valid: strings.TrimSpace(in.Name) != ""},
		Email:        email,
		PasswordHash: sql.NullString{String: hash, Valid: true},
		Role:         models.RoleUser,
		CreatedAt:    now,
	}
	account := &models.Account{
		ID:                uuid.NewString(),
		UserID:            u.ID,
		Provider:          models.ProviderCredentials,
		Type:              models.ProviderCredentials,
		ProviderAccountID: u.ID,
		PasswordHash:      sql.NullString{String: hash, Valid: true},
		CreatedAt:         now,
	}
	if err := s.users.CreateWithAccount(ctx, u, account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.ErrEmailTaken
		}
		return nil, apperr.Storage("create user", err)
	}

	s.log.Info(ctx, "user signed up", "user_id", u.ID)
	return u, nil
}

// Authenticate resolves a bearer token to its user. Only the most recently
// issued token of a user is accepted.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperr.ErrMissingToken
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.log.Debug(ctx, "token rejected", "err", err)
		return nil, apperr.ErrInvalidToken
	}

	u, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.ErrInvalidToken
		}
		return nil, apperr.Storage("get user by token", err)
	}
	if u.ID != claims.Subject {
		return nil, apperr.ErrInvalidToken
	}
	return u, nil
}

// SignOut clears the user's active token.
func (s *Service) SignOut(ctx context.Context, u *models.User) error {
	if err := s.users.SetToken(ctx, u.ID, sql.NullString{}); err != nil {
		return apperr.Storage("clear token", err)
	}
	s.log.Info(ctx, "user signed out", "user_id", u.ID)
	return nil
}

type LinkInput struct {
	UserID            string
	Provider          string
	Type              string
	ProviderAccountID string
	PasswordHash      string
}

// LinkAccount attaches a provider identity to an existing user.
func (s *Service) LinkAccount(ctx context.Context, in LinkInput) (*models.Account, error) {
	if in.UserID == "" || in.Provider == "" || in.ProviderAccountID == "" {
		return nil, apperr.Validation("user id, provider and provider account id required")
	}
	if in.Type == "" {
		in.Type = in.Provider
	}

	a := &models.Account{
		ID:                uuid.NewString(),
		UserID:            in.UserID,
		Provider:          in.Provider,
		Type:              in.Type,
		ProviderAccountID: in.ProviderAccountID,
		PasswordHash:      sql.NullString{String: in.PasswordHash, Valid: in.PasswordHash != ""},
		CreatedAt:         s.now().UTC(),
	}
	if err := s.accounts.Link(ctx, a); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("account already linked")
		}
		return nil, apperr.Storage("link account", err)
	}
	return a, nil
}

func (s *Service) UserByAccount(ctx context.Context, provider, providerAccountID string) (*models.User, error) {
	u, err := s.accounts.UserByAccount(ctx, provider, providerAccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("account not found")
		}
		return nil, apperr.Storage("get user by account", err)
	}
	return u, nil
}

func (s *Service) UnlinkAccount(ctx context.Context, provider, providerAccountID string) error {
	n, err := s.accounts.Unlink(ctx, provider, providerAccountID)
	if err != nil {
		return apperr.Storage("unlink account", err)
	}
	if n == 0 {
		return apperr.NotFound("account not found")
	}
	return nil
}

// CreateVerificationToken issues a random single-use token for identifier.
func (s *Service) CreateVerificationToken(ctx context.Context, identifier string, ttl time.Duration) (*models.VerificationToken, error) {
	if identifier == "" {
		return nil, apperr.Validation("identifier required")
	}

	raw := make([]byte, tokenEntropy)
	if _, err := rand.Read(raw); err != nil {
		return nil, apperr.Storage("token entropy", err)
	}

	vt := &models.VerificationToken{
		Identifier: identifier,
		Token:      hex.EncodeToString(raw),
		Expires:    s.now().UTC().Add(ttl),
	}
	if err := s.verifications.Create(ctx, vt); err != nil {
		return nil, apperr.Storage("create verification token", err)
	}
	return vt, nil
}

// UseVerificationToken consumes the token. Expired tokens are consumed too but
// reported as invalid.
func (s *Service) UseVerificationToken(ctx context.Context, identifier, token string) (*models.VerificationToken, error) {
	vt, err := s.verifications.Use(ctx, identifier, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("verification token not found")
		}
		return nil, apperr.Storage("use verification token", err)
	}
	if !vt.Expires.After(s.now()) {
		return nil, apperr.Validation("verification token expired")
	}
	return vt, nil
}
