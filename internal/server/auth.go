package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDKey = "journalUserID"

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid token")
)

// RequireJWT verifies an HS256 bearer token issued by the auth provider and
// stores its subject as the user ID.
func RequireJWT(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := validateToken(c.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				if errors.Is(err, errMissingToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

func validateToken(header string, secret []byte) (string, error) {
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(tokenStr) == "" {
		return "", errMissingToken
	}
	if len(secret) == 0 {
		return "", fmt.Errorf("%w: no secret configured", errInvalidToken)
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(tokenStr), &claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errInvalidToken
	}
	return claims.Subject, nil
}

// userID returns the authenticated user. Only valid behind RequireJWT.
func userID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
