package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingOwner is returned when a token would carry no subject.
var ErrMissingOwner = errors.New("owner ID is required")

// IssueOwnerToken signs an HS256 token whose subject is the owner of the
// books. An empty issuer leaves the claim out.
func IssueOwnerToken(ownerID, secret, issuer string, ttl time.Duration, now time.Time) (string, error) {
	if ownerID == "" {
		return "", ErrMissingOwner
	}
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   ownerID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseOwnerToken validates signature, algorithm and time claims and returns
// the owner. A non-empty issuer must match the token's.
func ParseOwnerToken(tokenString, secret, issuer string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrMissingOwner
	}
	return claims.Subject, nil
}
