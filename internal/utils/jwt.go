package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidToken トークンが不正
var ErrInvalidToken = errors.New("invalid token")

// JWTClaims はJWTトークンのペイロード
type JWTClaims struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.StandardClaims
}

// TokenSigner はプロセス共通の秘密鍵でJWTを署名・検証する
type TokenSigner struct {
	secret []byte
	expiry time.Duration
}

// NewTokenSigner TokenSignerを作成（expiryが0なら有効期限なし）
func NewTokenSigner(secret string, expiry time.Duration) *TokenSigner {
	return &TokenSigner{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Generate はユーザー情報からJWTトークンを生成する
func (s *TokenSigner) Generate(id uint, username, email string) (string, error) {
	now := time.Now()

	// クレームを作成
	claims := &JWTClaims{
		ID:       id,
		Username: username,
		Email:    email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt: now.Unix(),
		},
	}
	if s.expiry != 0 {
		claims.ExpiresAt = now.Add(s.expiry).Unix()
	}

	// 署名して文字列化
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate はJWTトークンを検証しクレームを返す
func (s *TokenSigner) Validate(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 署名方法を確認
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
