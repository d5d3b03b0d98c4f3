package service

import (
	"errors"
	"strings"
	"testing"
)

func TestToken_IssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	tokens := NewTokenService("test-secret")

	token, err := tokens.Issue("res-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reservationID, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reservationID != "res-1" {
		t.Errorf("expected reservation id res-1, got %s", reservationID)
	}
}

func TestToken_IssueEmptyReservationID_Rejected(t *testing.T) {
	t.Parallel()

	tokens := NewTokenService("test-secret")

	if _, err := tokens.Issue(""); !errors.Is(err, ErrInvalidReservationID) {
		t.Errorf("expected ErrInvalidReservationID, got %v", err)
	}
}

func TestToken_TokensAreUnique(t *testing.T) {
	t.Parallel()

	tokens := NewTokenService("test-secret")

	first, err := tokens.Issue("res-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := tokens.Issue("res-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Error("two issued tokens for the same reservation must differ")
	}
}

func TestToken_TamperedToken_Rejected(t *testing.T) {
	t.Parallel()

	tokens := NewTokenService("test-secret")

	token, err := tokens.Issue("res-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Flip a character in the payload.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected a three-part token, got %d parts", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := tokens.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestToken_WrongSecret_Rejected(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService("secret-a").Issue("res-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewTokenService("secret-b").Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestToken_GarbageInput_Rejected(t *testing.T) {
	t.Parallel()

	tokens := NewTokenService("test-secret")

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tokens.Verify(garbage); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("input %q: expected ErrInvalidToken, got %v", garbage, err)
		}
	}
}
