package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService("unit-test-signing-secret")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceRejectsEmptySecret(t *testing.T) {
	if _, err := NewService(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestService(t)

	tok, err := svc.Issue("alice@example.com", 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "alice@example.com" {
		t.Fatalf("expected subject alice@example.com, got %q", subject)
	}
}

func TestVerifyExpiryBoundary(t *testing.T) {
	svc := newTestService(t)
	now := time.Now()

	sign := func(exp time.Time) string {
		claims := jwt.MapClaims{
			"sub": "alice@example.com",
			"iat": now.Unix(),
			"exp": exp.Unix(),
		}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return tok
	}

	// Still inside the lifetime.
	if _, err := svc.Verify(sign(now.Add(2 * time.Second))); err != nil {
		t.Fatalf("expected token valid just before expiry, got %v", err)
	}

	// Just past it.
	_, err := svc.Verify(sign(now.Add(-2 * time.Second)))
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyFailureModes(t *testing.T) {
	svc := newTestService(t)
	other := &Service{secret: []byte("a-different-secret-entirely")}

	foreign, err := other.Issue("mallory@example.com", time.Minute)
	if err != nil {
		t.Fatalf("issue foreign token: %v", err)
	}

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	noSubjectToken, err := noSubject.SignedString(svc.secret)
	if err != nil {
		t.Fatalf("sign subjectless token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.jwt"},
		{name: "empty", token: ""},
		{name: "wrong signature", token: foreign},
		{name: "missing subject", token: noSubjectToken},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Verify(tc.token)
			if !errors.Is(err, ErrTokenInvalid) {
				t.Fatalf("expected ErrTokenInvalid, got %v", err)
			}
		})
	}
}

func TestIssueDefaultTTL(t *testing.T) {
	svc := newTestService(t)

	tok, err := svc.Issue("bob@example.com", 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parsed, err := jwt.Parse(tok, func(*jwt.Token) (interface{}, error) { return svc.secret, nil })
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("exp claim: %v", err)
	}

	remaining := time.Until(exp.Time)
	if remaining < DefaultTTL-time.Minute || remaining > DefaultTTL+time.Minute {
		t.Fatalf("expected expiry about %s out, got %s", DefaultTTL, remaining)
	}
}
