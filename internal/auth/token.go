// Package auth implements token issuance and the credential endpoints.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"
)

// JwtIssuer is the issuer claim stamped on every token this service signs.
const JwtIssuer = "nomado24-job-board"

// Claims carries the identity a verified token proves: who (subject), what
// they may act as (role) and, for company accounts, which company they are
// scoped to.
type Claims struct {
	Role      model.Role `json:"role"`
	CompanyID *uuid.UUID `json:"companyId,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a uuid.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService signs and verifies access tokens. The secret and lifetime are
// injected at construction, nothing is read from the environment here.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs a TokenService with the given HMAC secret and
// token lifetime.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given identity with the configured lifetime.
func (ts *TokenService) Issue(userID uuid.UUID, role model.Role, companyID *uuid.UUID) (string, error) {
	return ts.IssueWithDuration(userID, role, companyID, ts.ttl)
}

// IssueWithDuration signs a token with an explicit lifetime. Negative
// durations produce an already-expired token, which the tests rely on.
func (ts *TokenService) IssueWithDuration(userID uuid.UUID, role model.Role, companyID *uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:      role,
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    JwtIssuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates an encoded token, returning its claims. It
// fails on bad signatures, malformed tokens, expiry and foreign issuers.
func (ts *TokenService) Verify(encoded string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(encoded, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	if claims.Issuer != JwtIssuer {
		return nil, jwt.ErrTokenInvalidIssuer
	}
	if !claims.Role.Valid() {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// ExtractBearerToken pulls the token out of an Authorization header value of
// the form "Bearer <token>".
func ExtractBearerToken(headerValue string) (string, error) {
	const bearerSchema = "Bearer "
	if !strings.HasPrefix(headerValue, bearerSchema) || len(headerValue) <= len(bearerSchema) {
		return "", fmt.Errorf("invalid authorization header")
	}
	return headerValue[len(bearerSchema):], nil
}
