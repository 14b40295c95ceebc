package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer はアカウントIDを署名付きトークンに変換する。
// トークンはHMAC-SHA256で署名され、httpOnlyクッキーで配布される。
type TokenIssuer struct {
	secret []byte
	maxAge time.Duration
}

// NewTokenIssuer はTokenIssuerを生成する。
func NewTokenIssuer(secret string, maxAge time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), maxAge: maxAge}
}

// Issue はアカウントIDをsubjectとするトークンを発行する。
func (t *TokenIssuer) Issue(accountID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.maxAge)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し、subjectのアカウントIDを返す。
// 署名不正・期限切れ・アルゴリズム不一致はすべてエラー。
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}

// MaxAge はトークンの有効期間を返す。クッキーのMax-Age設定に使う。
func (t *TokenIssuer) MaxAge() time.Duration {
	return t.maxAge
}
