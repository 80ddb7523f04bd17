package jwt

import (
	"errors"
	"testing"
	"time"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixedUUID struct{ id string }

func (g fixedUUID) Generate() string { return g.id }

func testSecret() []byte {
	secret := make([]byte, 64)
	for i := range secret {
		secret[i] = byte(i)
	}
	return secret
}

func newTestJWT(t *testing.T, now time.Time) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		Secret:     testSecret(),
		Issuer:     "woundtrack-test",
		Audiences:  []string{"woundtrack-web"},
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		Clock:      fixedClock{now: now},
		UUID:       fixedUUID{id: "jti-1"},
	})
	if err != nil {
		t.Fatalf("new hs512: %v", err)
	}
	return s
}

func TestNewHS512RejectsShortSecret(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("too short")})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
	}
}

func TestGeneratePairAndVerify(t *testing.T) {
	s := newTestJWT(t, time.Now())

	pair, err := s.GeneratePair(42, "doc@careplus.dev", "DOCTOR")
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}

	clm, err := s.Verify(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if clm.UserID != 42 || clm.UserEmail != "doc@careplus.dev" || clm.Role != "DOCTOR" {
		t.Fatalf("unexpected claims %+v", clm)
	}
	if clm.TokenUse != UseAccess {
		t.Fatalf("expected access token use, got %q", clm.TokenUse)
	}

	if _, err := s.VerifyRefresh(pair.RefreshToken); err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
}

func TestVerifyRejectsWrongTokenUse(t *testing.T) {
	s := newTestJWT(t, time.Now())

	pair, err := s.GeneratePair(7, "nurse@careplus.dev", "NURSE")
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	if _, err := s.Verify(pair.RefreshToken); !errors.Is(err, ErrWrongTokenUse) {
		t.Fatalf("expected ErrWrongTokenUse for refresh token on Verify, got %v", err)
	}
	if _, err := s.VerifyRefresh(pair.AccessToken); !errors.Is(err, ErrWrongTokenUse) {
		t.Fatalf("expected ErrWrongTokenUse for access token on VerifyRefresh, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	// issued far enough in the past that even the refresh TTL has elapsed
	s := newTestJWT(t, time.Now().Add(-48*time.Hour))

	pair, err := s.GeneratePair(7, "nurse@careplus.dev", "NURSE")
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	if _, err := s.Verify(pair.AccessToken); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if _, err := s.VerifyRefresh(pair.RefreshToken); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	s := newTestJWT(t, time.Now())

	otherSecret := make([]byte, 64)
	for i := range otherSecret {
		otherSecret[i] = byte(255 - i)
	}
	other, err := NewHS512(Config{
		Secret:     otherSecret,
		Issuer:     "woundtrack-test",
		Audiences:  []string{"woundtrack-web"},
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		Clock:      fixedClock{now: time.Now()},
		UUID:       fixedUUID{id: "jti-2"},
	})
	if err != nil {
		t.Fatalf("new hs512: %v", err)
	}

	pair, err := other.GeneratePair(9, "x@careplus.dev", "DOCTOR")
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	if _, err := s.Verify(pair.AccessToken); err == nil {
		t.Fatalf("expected verification failure for token signed with a different key")
	}
}
