package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func echoPrincipal(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := PrincipalFromContext(r.Context())
		require.NoError(t, err)
		w.Write([]byte(principal.String()))
	})
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	principal, err := interfaces.NewPrincipalFromHex("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)

	token, err := NewToken(testSecret, principal, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	Middleware(testSecret, logger)(echoPrincipal(t)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, principal.String(), w.Body.String())
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	Middleware(testSecret, logger)(echoPrincipal(t)).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareRejectsWrongSecret(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	principal, err := interfaces.NewPrincipalFromHex("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)

	token, err := NewToken([]byte("other-secret"), principal, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	Middleware(testSecret, logger)(echoPrincipal(t)).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	principal, err := interfaces.NewPrincipalFromHex("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)

	token, err := NewToken(testSecret, principal, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	Middleware(testSecret, logger)(echoPrincipal(t)).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPrincipalFromContextWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := PrincipalFromContext(req.Context())
	require.ErrorIs(t, err, ErrNoPrincipal)
}
