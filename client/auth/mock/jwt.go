package mock

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueAccessToken signs an access token for userID that expires after ttl
func (s *Service) IssueAccessToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.Issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        randomID(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.PrivateKey)
}

// IssueRefreshToken creates a single-use refresh token for userID
func (s *Service) IssueRefreshToken(userID string) string {
	token := "rt_" + randomID()
	s.refreshTokens.Put(token, userID)
	return token
}

// verify returns the subject of a valid access token
func (s *Service) verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return &s.PrivateKey.PublicKey, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func randomID() string {
	data := make([]byte, 12)
	_, _ = rand.Read(data)
	return hex.EncodeToString(data)
}
