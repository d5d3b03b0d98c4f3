package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and validates the opaque verification token rendered as
// the reservation QR code. The token proves that a confirmation for the
// reservation was shown to the holder; whether the trip may actually start is
// decided by the reservation's live status, not by the token.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue mints a signed token binding the reservation id, the issuance time
// and a random token id. Tokens are issued exactly once, at confirmation.
func (s *TokenService) Issue(reservationID string) (string, error) {
	if reservationID == "" {
		return "", ErrInvalidReservationID
	}

	claims := jwt.MapClaims{
		"rid": reservationID,
		"iat": time.Now().Unix(),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates the token signature and returns the bound reservation id.
// Any malformed, tampered or foreign-keyed token fails with ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	reservationID, ok := claims["rid"].(string)
	if !ok || reservationID == "" {
		return "", ErrInvalidToken
	}

	return reservationID, nil
}
