package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de token. El middleware solo acepta access; /auth/refresh solo acepta refresh.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrWrongTokenType el token es válido pero de otro tipo.
var ErrWrongTokenType = errors.New("jwt: tipo de token incorrecto")

// Claims incluye los claims estándar JWT más el rol y el tipo de token.
// Subject es el ID del usuario.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
	Type string `json:"type"` // "access" | "refresh"
}

// UserID devuelve el sub del token.
func (c *Claims) UserID() string {
	return c.Subject
}

// Generate genera un token firmado HS256 para userID con el tipo y la vigencia indicados.
func Generate(secret, userID, role, tokenType, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if tokenType != TokenTypeAccess && tokenType != TokenTypeRefresh {
		return "", fmt.Errorf("jwt: tipo de token desconocido %q", tokenType)
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
		Type: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// ParseOfType valida el token y exige que sea del tipo indicado.
func ParseOfType(secret, tokenString, tokenType string) (*Claims, error) {
	claims, err := Parse(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
