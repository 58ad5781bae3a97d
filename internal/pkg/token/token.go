package token

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies bearer tokens issued by the identity collaborator.
// The dashboard only cares about two claims: user_id and is_admin.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	MintAccessToken(userID string, isAdmin bool) (string, error)
}

type tokenService struct {
	tokenAuth  *jwtauth.JWTAuth
	expiration time.Duration
}

func NewService(secretKey string, expiration time.Duration) Service {
	return &tokenService{
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		expiration: expiration,
	}
}

func (s *tokenService) JWTAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

// MintAccessToken issues a signed token carrying the admin capability.
// Production tokens come from the identity service; this is for local
// development and tests, which share the signing secret.
func (s *tokenService) MintAccessToken(userID string, isAdmin bool) (string, error) {
	claims := map[string]interface{}{
		"user_id":  userID,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(s.expiration).Unix(),
	}
	_, tokenString, err := s.tokenAuth.Encode(claims)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}
