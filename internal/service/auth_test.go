package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/nabdhapp/nabdh-server/internal/errors"
	"github.com/nabdhapp/nabdh-server/internal/store/memory"
	"github.com/nabdhapp/nabdh-server/internal/validation"
)

// setupAuthTest creates an auth service over an in-memory store.
func setupAuthTest(t *testing.T) (*AuthService, *memory.Store) {
	t.Helper()
	s := memory.New(nil)
	t.Cleanup(func() { s.Close() })
	return NewAuthService(s, validation.New(), nil), s
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, SignupRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	require.NotNil(t, resp.Session)
	assert.NotEmpty(t, resp.Session.ID)

	login, err := svc.Login(ctx, LoginRequest{Username: "ALICE", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotEqual(t, resp.Session.ID, login.Session.ID, "each login gets its own session")
}

func TestSignupValidation(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  SignupRequest
	}{
		{"short username", SignupRequest{Username: "ab", Password: "long enough pw"}},
		{"short password", SignupRequest{Username: "alice", Password: "short"}},
		{"missing username", SignupRequest{Password: "long enough pw"}},
		{"bad email", SignupRequest{Username: "alice", Password: "long enough pw", Email: "not-an-email"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tc.req)
			require.Error(t, err)

			var derr *domainerrors.Error
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, domainerrors.CodeValidation, derr.Code)
		})
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupRequest{Username: "Alice", Password: "other password"})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeConflict, derr.Code)
}

func TestLoginDoesNotRevealAccounts(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)

	_, errUnknown := svc.Login(ctx, LoginRequest{Username: "nobody", Password: "whatever pass"})
	_, errWrongPw := svc.Login(ctx, LoginRequest{Username: "alice", Password: "wrong password"})

	var d1, d2 *domainerrors.Error
	require.ErrorAs(t, errUnknown, &d1)
	require.ErrorAs(t, errWrongPw, &d2)
	assert.Equal(t, d1.Code, d2.Code)
	assert.Equal(t, d1.Message, d2.Message)
}

func TestVerifySession(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, SignupRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)

	user, err := svc.VerifySession(ctx, resp.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.VerifySession(ctx, "sess-bogus")
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeUnauthorized, derr.Code)

	_, err = svc.VerifySession(ctx, "")
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeUnauthorized, derr.Code)
}

func TestVerifySessionExpired(t *testing.T) {
	svc, s := setupAuthTest(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, SignupRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)

	// Force the session past its expiry.
	sess, err := s.GetSession(ctx, resp.Session.ID)
	require.NoError(t, err)
	require.NoError(t, s.DeleteSession(ctx, sess.ID))
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, s.CreateSession(ctx, sess))

	_, err = svc.VerifySession(ctx, sess.ID)
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeUnauthorized, derr.Code)

	// Expired session is removed on sight.
	_, err = s.GetSession(ctx, sess.ID)
	assert.Error(t, err)
}

func TestLogout(t *testing.T) {
	svc, _ := setupAuthTest(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, SignupRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Session.ID))

	_, err = svc.VerifySession(ctx, resp.Session.ID)
	assert.Error(t, err)

	// Logout is idempotent.
	assert.NoError(t, svc.Logout(ctx, resp.Session.ID))
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestCleanupExpiredSessions(t *testing.T) {
	svc, s := setupAuthTest(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, SignupRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)

	sess, err := s.GetSession(ctx, resp.Session.ID)
	require.NoError(t, err)
	require.NoError(t, s.DeleteSession(ctx, sess.ID))
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, s.CreateSession(ctx, sess))

	n, err := svc.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
