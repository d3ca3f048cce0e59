package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"flowcash/internal/ledger"
	applog "flowcash/internal/log"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
)

// dummyHash is a throwaway bcrypt hash compared against when the email is
// unknown, keeping the failure path constant-time.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Credential is the result of a successful sign-in.
type Credential struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service issues and verifies sessions against a user store.
type Service struct {
	users  ledger.UserStore
	secret []byte
	ttl    time.Duration

	subs *subscribers

	// now is swappable in tests.
	now func() time.Time
}

func NewService(users ledger.UserStore, secret string, ttl time.Duration) *Service {
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		subs:   newSubscribers(),
		now:    time.Now,
	}
}

// Register creates an account and immediately signs it in.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Credential, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := ledger.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, account); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Account registered", applog.FieldUserID, account.ID)

	return s.issue(ctx, account)
}

// SignIn verifies the password and issues a session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Credential, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if account == nil {
		// Burn a comparison anyway so misses cost the same as mismatches.
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, *account)
}

// SignOut ends the user's session. Tokens are stateless, so this exists to
// drive the subscriber side effects (cache invalidation, UI reset).
func (s *Service) SignOut(ctx context.Context, userID string) {
	slog.InfoContext(ctx, "Account signed out", applog.FieldUserID, userID)
	s.subs.notify(State{UserID: userID, SignedIn: false})
}

// SwitchAccount signs the current user out and signs the target account in
// with one direct call. There is no intermediate UI state.
func (s *Service) SwitchAccount(ctx context.Context, currentUserID, email, password string) (*Credential, error) {
	s.SignOut(ctx, currentUserID)
	return s.SignIn(ctx, email, password)
}

// Verify parses a session token and returns the user ID it carries.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

func (s *Service) issue(ctx context.Context, account ledger.Account) (*Credential, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"name":  account.Name,
		"iss":   "flowcash",
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	slog.InfoContext(ctx, "Session issued", applog.FieldUserID, account.ID)
	s.subs.notify(State{
		UserID:   account.ID,
		Email:    account.Email,
		Name:     account.Name,
		SignedIn: true,
	})

	return &Credential{
		Token:     signed,
		UserID:    account.ID,
		ExpiresAt: expiresAt,
	}, nil
}
