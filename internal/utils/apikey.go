package utils

import (
	"errors"
	"time"

	"github.com/MadinaDev2107/Group-Manager/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

type apiKeyClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAPIKey menandatangani API key HS256. ttl <= 0 berarti tanpa kedaluwarsa.
func GenerateAPIKey(claims model.APIKeyClaims, secret string, ttl time.Duration) (string, error) {
	if claims.Role != model.RoleReader && claims.Role != model.RoleEditor {
		return "", errors.New("unknown role: " + claims.Role)
	}

	now := time.Now()
	c := apiKeyClaims{
		Role: claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  claims.Subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString([]byte(secret))
}

func ValidateAPIKey(tokenString, secret string) (*model.APIKeyClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &apiKeyClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*apiKeyClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid api key")
	}

	return &model.APIKeyClaims{
		Role:    claims.Role,
		Subject: claims.Subject,
	}, nil
}
