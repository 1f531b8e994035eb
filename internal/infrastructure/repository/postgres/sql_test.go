package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := &pq.Error{Code: "23505"}
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		err := &pq.Error{Code: "23503"}
		if isUniqueViolation(err) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(sql.ErrNoRows) {
			t.Fatalf("expected false for non-pq error")
		}
	})
}

func TestNullTimeRoundTrip(t *testing.T) {
	if got := nullTimeToTimePtr(sql.NullTime{}); got != nil {
		t.Fatalf("invalid NullTime must map to nil, got %v", got)
	}

	at := time.Date(2025, time.October, 4, 18, 0, 0, 0, time.UTC)
	back := nullTimeToTimePtr(timePtrToNullTime(&at))
	if back == nil || !back.Equal(at) {
		t.Fatalf("round trip lost the value: %v", back)
	}
}

func TestNullInt32RoundTrip(t *testing.T) {
	if got := nullInt32ToIntPtr(sql.NullInt32{}); got != nil {
		t.Fatalf("invalid NullInt32 must map to nil, got %v", got)
	}

	score := 3
	back := nullInt32ToIntPtr(intPtrToNullInt32(&score))
	if back == nil || *back != score {
		t.Fatalf("round trip lost the value: %v", back)
	}
}
