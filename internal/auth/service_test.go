package auth

import (
	"context"
	"testing"
	"time"

	"flowcash/internal/ledger"
	"flowcash/internal/ledger/memory"

	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-0123456789"

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(memory.New(), testSecret, time.Hour)
}

func TestRegisterAndSignIn(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cred, err := svc.Register(ctx, "Maria Silva", "maria@example.com", "s3nha-forte")
	require.NoError(t, err)
	require.NotEmpty(t, cred.Token)
	require.NotEmpty(t, cred.UserID)
	require.WithinDuration(t, time.Now().Add(time.Hour), cred.ExpiresAt, time.Minute)

	again, err := svc.SignIn(ctx, "maria@example.com", "s3nha-forte")
	require.NoError(t, err)
	require.Equal(t, cred.UserID, again.UserID)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "x", "not-an-email", "s3nha-forte")
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, "x", "x@example.com", "curta")
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Register(ctx, "x", "maria@example.com", "s3nha-forte")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "y", "MARIA@example.com", "outra-senha")
	require.ErrorIs(t, err, ledger.ErrEmailTaken)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Maria", "maria@example.com", "s3nha-forte")
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "maria@example.com", "senha-errada")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "ninguem@example.com", "s3nha-forte")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cred, err := svc.Register(ctx, "Maria", "maria@example.com", "s3nha-forte")
	require.NoError(t, err)

	userID, err := svc.Verify(cred.Token)
	require.NoError(t, err)
	require.Equal(t, cred.UserID, userID)

	_, err = svc.Verify("garbage.token.here")
	require.ErrorIs(t, err, ErrInvalidToken)

	other := NewService(memory.New(), "a-different-secret-value", time.Hour)
	_, err = other.Verify(cred.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cred, err := svc.Register(ctx, "Maria", "maria@example.com", "s3nha-forte")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Verify(cred.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSubscribeDeliversSnapshots(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var states []State
	unsubscribe := svc.Subscribe(func(s State) { states = append(states, s) })

	cred, err := svc.Register(ctx, "Maria", "maria@example.com", "s3nha-forte")
	require.NoError(t, err)
	require.Len(t, states, 1)
	require.True(t, states[0].SignedIn)
	require.Equal(t, cred.UserID, states[0].UserID)

	svc.SignOut(ctx, cred.UserID)
	require.Len(t, states, 2)
	require.False(t, states[1].SignedIn)
	require.Equal(t, cred.UserID, states[1].UserID)

	unsubscribe()
	svc.SignOut(ctx, cred.UserID)
	require.Len(t, states, 2, "unsubscribed callback must not fire")
}

func TestSwitchAccount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, "Maria", "maria@example.com", "s3nha-forte")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "João", "joao@example.com", "outra-senha")
	require.NoError(t, err)

	var states []State
	defer svc.Subscribe(func(s State) { states = append(states, s) })()

	cred, err := svc.SwitchAccount(ctx, first.UserID, "joao@example.com", "outra-senha")
	require.NoError(t, err)
	require.NotEqual(t, first.UserID, cred.UserID)

	// Sign-out of the old account, then sign-in of the new one.
	require.Len(t, states, 2)
	require.False(t, states[0].SignedIn)
	require.Equal(t, first.UserID, states[0].UserID)
	require.True(t, states[1].SignedIn)
	require.Equal(t, cred.UserID, states[1].UserID)

	_, err = svc.SwitchAccount(ctx, cred.UserID, "joao@example.com", "senha-errada")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
