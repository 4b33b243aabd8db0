package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"rigforge/backend/common"
	"rigforge/backend/model"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenDuration  = 24 * time.Hour
	refreshTokenDuration = 7 * 24 * time.Hour
	tokenIssuer          = "rigforge"
)

// Claims are the JWT claims carried by access and refresh tokens.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     int    `json:"role"`
	jwt.RegisteredClaims
}

func newClaims(user *model.User, duration time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}
}

// GenerateToken issues a signed access token for user.
func GenerateToken(user *model.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims(user, accessTokenDuration))
	return token.SignedString([]byte(common.JWTSecret))
}

// GenerateRefreshToken issues a longer-lived token signed with the refresh
// secret.
func GenerateRefreshToken(user *model.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims(user, refreshTokenDuration))
	return token.SignedString([]byte(common.JWTRefreshSecret))
}

func validateWithSecret(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ValidateToken parses and verifies an access token.
func ValidateToken(tokenString string) (*Claims, error) {
	return validateWithSecret(tokenString, common.JWTSecret)
}

// ValidateRefreshToken parses and verifies a refresh token.
func ValidateRefreshToken(tokenString string) (*Claims, error) {
	return validateWithSecret(tokenString, common.JWTRefreshSecret)
}

// BlacklistToken invalidates an access token until it would have expired.
// Without Redis there is nothing to record; the short token lifetime bounds
// the exposure.
func BlacklistToken(ctx context.Context, tokenString string) error {
	if !common.RedisEnabled || common.RDB == nil {
		return nil
	}
	claims, err := ValidateToken(tokenString)
	if err != nil {
		// already unusable
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return common.RDB.Set(ctx, "jwt:blacklist:"+tokenString, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether the token was blacklisted by a logout.
func IsTokenBlacklisted(ctx context.Context, tokenString string) bool {
	if !common.RedisEnabled || common.RDB == nil {
		return false
	}
	n, err := common.RDB.Exists(ctx, "jwt:blacklist:"+tokenString).Result()
	return err == nil && n > 0
}
