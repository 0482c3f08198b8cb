package model

import "testing"

func TestCarimbo(t *testing.T) {
	tests := []struct {
		status CardStatus
		want   string
	}{
		{CardStatusApproved, StampAuthorized},
		{CardStatusPending, StampPending},
		// Rejection keeps the pending stamp on the visible card.
		{CardStatusRejected, StampPending},
	}
	for _, tt := range tests {
		r := &CardRecord{Status: tt.status}
		if got := r.Carimbo(); got != tt.want {
			t.Errorf("Carimbo(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestSituacaoDistinguishesAllStatuses(t *testing.T) {
	seen := make(map[string]CardStatus)
	for _, status := range []CardStatus{CardStatusPending, CardStatusApproved, CardStatusRejected} {
		r := &CardRecord{Status: status}
		s := r.Situacao()
		if s == "" {
			t.Errorf("Situacao(%q) is empty", status)
		}
		if prev, ok := seen[s]; ok {
			t.Errorf("Situacao collides between %q and %q", prev, status)
		}
		seen[s] = status
	}
}

func TestCardStatusValid(t *testing.T) {
	for _, status := range []CardStatus{CardStatusPending, CardStatusApproved, CardStatusRejected} {
		if !status.Valid() {
			t.Errorf("%q should be valid", status)
		}
	}
	for _, status := range []CardStatus{"", "archived", "Pending"} {
		if status.Valid() {
			t.Errorf("%q should be invalid", status)
		}
	}
}
