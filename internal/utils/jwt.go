package utils

import (
	"fmt"
	"time"

	"skillswap/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// MemberClaims are the JWT claims issued to authenticated members.
type MemberClaims struct {
	MemberID string `json:"member_id"`
	Nickname string `json:"nickname,omitempty"`
	jwt.RegisteredClaims
}

// GenerateMemberJWT issues a signed token for a member
func GenerateMemberJWT(memberID, nickname string) (string, error) {
	cfg := config.Load()

	now := time.Now()
	claims := MemberClaims{
		MemberID: memberID,
		Nickname: nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.JWT.Issuer,
			Subject:   memberID,
			Audience:  jwt.ClaimStrings{cfg.JWT.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour * time.Duration(cfg.JWT.ExpiryHour))),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateMemberJWT parses and validates a member token
func ValidateMemberJWT(tokenString string) (*MemberClaims, error) {
	cfg := config.Load()

	token, err := jwt.ParseWithClaims(tokenString, &MemberClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*MemberClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
