package admintoken

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"librarysite/internal/util"
	"librarysite/pkg/domain"
)

const (
	// DefaultTokenTTL is the lifetime of an admin token.
	DefaultTokenTTL = 12 * time.Hour
	// DefaultLeeway is clock skew tolerance for token validation.
	DefaultLeeway   = 15 * time.Second

	Issuer   = "librarysite"
	Audience = "blog-admin"

	minSecretLen = 16
)

// Claims carry the admin identity.
type Claims struct {
	Superuser bool `json:"su,omitempty"`
	jwt.RegisteredClaims
}

// Signer issues HS256 admin tokens for staff accounts.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Verifier validates admin tokens signed with the same secret.
type Verifier struct {
	secret []byte
	leeway time.Duration
}

func checkSecret(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("admin token secret must be at least %d characters", minSecretLen)
	}
	return []byte(secret), nil
}

func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	key, err := checkSecret(secret)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Signer{secret: key, ttl: ttl, now: time.Now}, nil
}

// Sign issues a token for user. Only staff and superusers qualify.
func (s *Signer) Sign(user domain.User) (string, time.Time, error) {
	if !user.IsStaff && !user.IsSuperuser {
		return "", time.Time{}, errors.New("user is not staff")
	}
	if strings.TrimSpace(user.Username) == "" {
		return "", time.Time{}, errors.New("username is required")
	}
	now := s.now().UTC()
	expires := now.Add(s.ttl)
	claims := Claims{
		Superuser: user.IsSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   user.Username,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        util.NewID(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign admin token: %w", err)
	}
	return token, expires, nil
}

func NewVerifier(secret string, leeway time.Duration) (*Verifier, error) {
	key, err := checkSecret(secret)
	if err != nil {
		return nil, err
	}
	if leeway <= 0 {
		leeway = DefaultLeeway
	}
	return &Verifier{secret: key, leeway: leeway}, nil
}

// Verify validates signature, expiry, audience and issuer.
func (v *Verifier) Verify(token string) (Claims, error) {
	claims := Claims{}
	token = strings.TrimSpace(token)
	if token == "" {
		return claims, errors.New("token required")
	}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(Audience),
		jwt.WithIssuer(Issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return claims, err
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return claims, errors.New("subject required")
	}
	return claims, nil
}

// BearerToken extracts a bearer token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}
