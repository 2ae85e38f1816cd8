package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAdmitRequiresToken(t *testing.T) {
	svc := NewService(&MemStore{})

	d := svc.Admit()
	if d.Allow {
		t.Fatalf("empty session admitted")
	}
	if d.RedirectTo != LoginRoute {
		t.Fatalf("redirect = %q, want %q", d.RedirectTo, LoginRoute)
	}

	if err := svc.Set("tok-123"); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if d := svc.Admit(); !d.Allow {
		t.Fatalf("session with token not admitted")
	}
}

func TestClearRemovesPersistedToken(t *testing.T) {
	store := &MemStore{}
	svc := NewService(store)
	if err := svc.Set("tok-123"); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if err := svc.Clear(); err != nil {
		t.Fatalf("clear error: %v", err)
	}
	if svc.Present() {
		t.Fatalf("token still present after clear")
	}
	if tok, _ := store.Load(); tok != "" {
		t.Fatalf("store still holds %q after clear", tok)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := FileStore{Path: path}

	if tok, err := store.Load(); err != nil || tok != "" {
		t.Fatalf("fresh store load = %q, %v", tok, err)
	}
	if err := store.Save("tok-456"); err != nil {
		t.Fatalf("save error: %v", err)
	}

	// A new service picks the persisted token up.
	svc := NewService(FileStore{Path: path})
	if got := svc.Token(); got != "tok-456" {
		t.Fatalf("token = %q, want tok-456", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("session file survives clear: %v", err)
	}
	// Clearing an already-cleared store is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear error: %v", err)
	}
}

func TestExpiresAtReadsExpClaim(t *testing.T) {
	exp := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": int64(7),
		"exp":     exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	svc := NewService(&MemStore{})
	if err := svc.Set(signed); err != nil {
		t.Fatalf("set error: %v", err)
	}

	got, ok := svc.ExpiresAt()
	if !ok {
		t.Fatalf("no expiry parsed")
	}
	if !got.Equal(exp) {
		t.Fatalf("expiry = %v, want %v", got, exp)
	}

	// Opaque non-JWT tokens simply report no expiry.
	if err := svc.Set("opaque-token"); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if _, ok := svc.ExpiresAt(); ok {
		t.Fatalf("opaque token reported an expiry")
	}
}
