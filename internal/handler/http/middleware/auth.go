package middleware

import (
	"net/http"

	"github.com/Jimmy4745/lovable-dispatch/internal/handler/http/response"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token carrying an
// owner. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		if tokenType, ok := claims["type"]; ok && tokenType != "access" {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		if _, err := jwt.UserIDFromContext(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
