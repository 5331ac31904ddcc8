package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UnmarshalJSON accepts user_id as either a string or a number, since
// issuers differ on the claim type.
func (c *Claims) UnmarshalJSON(data []byte) error {
	type plainClaims Claims
	aux := struct {
		*plainClaims
		UserID json.RawMessage `json:"user_id"`
	}{plainClaims: (*plainClaims)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.UserID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		c.UserID = ""
		return nil
	}
	if raw[0] == '"' {
		return json.Unmarshal(raw, &c.UserID)
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return fmt.Errorf("user_id claim: %w", err)
	}
	if _, err := strconv.ParseInt(number.String(), 10, 64); err != nil {
		return fmt.Errorf("user_id claim: %w", err)
	}
	c.UserID = number.String()
	return nil
}

func GenerateToken(userID string, role string, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(tokenString string, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
