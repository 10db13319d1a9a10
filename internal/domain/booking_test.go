package domain

import "testing"

func TestPaymentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from PaymentStatus
		to   PaymentStatus
		want bool
	}{
		{"pending to completed", PaymentStatusPending, PaymentStatusCompleted, true},
		{"pending to failed", PaymentStatusPending, PaymentStatusFailed, true},
		{"pending to refunded", PaymentStatusPending, PaymentStatusRefunded, false},
		{"completed to refunded", PaymentStatusCompleted, PaymentStatusRefunded, true},
		{"completed to pending", PaymentStatusCompleted, PaymentStatusPending, false},
		{"completed to failed", PaymentStatusCompleted, PaymentStatusFailed, false},
		{"refunded is terminal", PaymentStatusRefunded, PaymentStatusCompleted, false},
		{"refunded to pending", PaymentStatusRefunded, PaymentStatusPending, false},
		{"failed is terminal", PaymentStatusFailed, PaymentStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestPaymentStatus_IsActive(t *testing.T) {
	active := []PaymentStatus{PaymentStatusPending, PaymentStatusCompleted}
	for _, s := range active {
		if !s.IsActive() {
			t.Errorf("expected %s to be active", s)
		}
	}

	inactive := []PaymentStatus{PaymentStatusRefunded, PaymentStatusFailed}
	for _, s := range inactive {
		if s.IsActive() {
			t.Errorf("expected %s not to be active", s)
		}
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
}

func TestEvent_IsBookable(t *testing.T) {
	cap := 100
	now := mustParse(t, "2026-06-01T12:00:00Z")
	future := mustParse(t, "2026-07-01T19:00:00Z")
	past := mustParse(t, "2026-05-01T19:00:00Z")

	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"published future event with capacity", Event{Status: EventStatusPublished, Capacity: &cap, StartDate: future}, true},
		{"draft event", Event{Status: EventStatusDraft, Capacity: &cap, StartDate: future}, false},
		{"cancelled event", Event{Status: EventStatusCancelled, Capacity: &cap, StartDate: future}, false},
		{"published without capacity", Event{Status: EventStatusPublished, Capacity: nil, StartDate: future}, false},
		{"already started", Event{Status: EventStatusPublished, Capacity: &cap, StartDate: past}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.IsBookable(now); got != tt.want {
				t.Errorf("IsBookable() = %v, want %v", got, tt.want)
			}
		})
	}
}
