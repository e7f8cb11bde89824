package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrUserIDClaimMissing = errors.New("user_id claim is missing or invalid")

// Service verifies access tokens issued by the identity provider (HS256,
// shared secret) and can mint tokens for tooling and tests.
type Service interface {
	GenerateAccessToken(userID string, email string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, email string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"type":    "access",
		"exp":     expiresAt,
	}

	_, token, err = j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}
	return token, expiresAt, nil
}

// UserIDFromContext returns the owner of the request, the user_id claim of the
// verified token. Every row read or written on behalf of the request is scoped
// by it.
func UserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrUserIDClaimMissing
	}
	return userID, nil
}

// WithUserID returns ctx carrying an unsigned token whose only claim is
// user_id. Background jobs and tests use it to act as an owner.
func WithUserID(ctx context.Context, userID string) context.Context {
	token := jwt.New()
	_ = token.Set("user_id", userID)
	return jwtauth.NewContext(ctx, token, nil)
}
