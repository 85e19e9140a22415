package admintoken

import (
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"librarysite/pkg/domain"
)

const testSecret = "0123456789abcdef-secret"

func TestSignAndVerify(t *testing.T) {
	signer, err := NewSigner(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	verifier, err := NewVerifier(testSecret, time.Second)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	token, expires, err := signer.Sign(domain.User{Username: "admin", IsSuperuser: true})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if time.Until(expires) < 59*time.Minute {
		t.Fatalf("unexpected expiry %v", expires)
	}
	claims, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "admin" || !claims.Superuser || claims.ID == "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestSignRejectsRegularUsers(t *testing.T) {
	signer, _ := NewSigner(testSecret, 0)
	if _, _, err := signer.Sign(domain.User{Username: "reader"}); err == nil {
		t.Fatalf("expected regular user to be refused")
	}
}

func TestVerifyRejectsWrongSecretAndExpiry(t *testing.T) {
	signer, _ := NewSigner(testSecret, time.Minute)
	other, _ := NewVerifier("another-secret-value!!", time.Second)
	token, _, err := signer.Sign(domain.User{Username: "staff", IsStaff: true})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := other.Verify(token); err == nil {
		t.Fatalf("expected signature mismatch")
	}

	signer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := signer.Sign(domain.User{Username: "staff", IsStaff: true})
	if err != nil {
		t.Fatalf("sign expired: %v", err)
	}
	verifier, _ := NewVerifier(testSecret, time.Second)
	if _, err := verifier.Verify(expired); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   "admin",
		Audience:  jwt.ClaimStrings{Audience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign hs512: %v", err)
	}
	verifier, _ := NewVerifier(testSecret, time.Second)
	if _, err := verifier.Verify(token); err == nil {
		t.Fatalf("expected HS512 token to be rejected")
	}
}

func TestShortSecretRejected(t *testing.T) {
	if _, err := NewSigner("short", time.Hour); err == nil {
		t.Fatalf("expected short secret to fail")
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/admin/posts", nil)
	if _, ok := BearerToken(req); ok {
		t.Fatalf("expected no token")
	}
	req.Header.Set("Authorization", "Bearer abc")
	if tok, ok := BearerToken(req); !ok || tok != "abc" {
		t.Fatalf("unexpected token %q", tok)
	}
}
