package tokens

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
	GuestTTL   = 24 * time.Hour
)

func SignAccessToken(userID, role string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(AccessTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func SignRefreshToken(userID, role string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(RefreshTTL).Unix(),
		"typ":  "refresh",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// SignGuestToken carries a throwaway cart identity for visitors who have not
// logged in.
func SignGuestToken(guestID string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":  guestID,
		"role": "guest",
		"exp":  time.Now().Add(GuestTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func Parse(raw string, secret []byte) (jwt.MapClaims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("cannot parse claims")
	}
	return claims, nil
}

func ParseRefresh(raw string, secret []byte) (jwt.MapClaims, error) {
	claims, err := Parse(raw, secret)
	if err != nil {
		return nil, err
	}
	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, fmt.Errorf("not a refresh token")
	}
	return claims, nil
}

func Subject(claims jwt.MapClaims) (id, role string, err error) {
	id, ok := claims["sub"].(string)
	if !ok || id == "" {
		return "", "", fmt.Errorf("missing sub claim")
	}
	role, ok = claims["role"].(string)
	if !ok || role == "" {
		return "", "", fmt.Errorf("missing role claim")
	}
	return id, role, nil
}

func Sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
