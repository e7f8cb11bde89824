package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protected(ja *jwtauth.JWTAuth) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return jwtauth.Verifier(ja)(AuthRequired(ok))
}

func TestAuthRequired(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "15m")
	ja := svc.JWTAuth()
	h := protected(ja)

	access, _, err := svc.GenerateAccessToken("owner-1", "owner@example.com")
	require.NoError(t, err)

	_, refresh, err := ja.Encode(map[string]interface{}{"user_id": "owner-1", "type": "refresh"})
	require.NoError(t, err)

	_, noOwner, err := ja.Encode(map[string]interface{}{"type": "access"})
	require.NoError(t, err)

	_, foreign, err := jwtauth.New("HS256", []byte("other-secret"), nil).Encode(map[string]interface{}{"user_id": "owner-1"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid access token", "Bearer " + access, http.StatusOK},
		{"missing token", "", http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"token without owner", "Bearer " + noOwner, http.StatusUnauthorized},
		{"wrong signature", "Bearer " + foreign, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
