package utils

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	GuestCookieName = "guest_session"
	GuestTokenTTL   = 30 * 24 * time.Hour
)

// GuestDetails carries the name a guest typed into the upload form, so the web page
// does not ask again on the next visit.
type GuestDetails struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

func SignedGuestToken(secret, name string, ttl time.Duration) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("guest name is empty")
	}
	now := time.Now()
	claims := &GuestDetails{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "guestgallery",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		slog.Error("failed to sign guest token", "error", err)
		return "", errors.New("error in signing")
	}
	return signedToken, nil
}

// ParseGuestToken verifies the signature and expiry and returns the guest name.
func ParseGuestToken(secret, tokenString string) (string, error) {
	claims := &GuestDetails{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("guestgallery"), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid guest token: %w", err)
	}
	if strings.TrimSpace(claims.Name) == "" {
		return "", errors.New("invalid guest token: empty name")
	}
	return claims.Name, nil
}
