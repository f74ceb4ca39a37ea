package order

import "testing"

func TestParseStatus(t *testing.T) {
	for _, name := range []string{"PENDING_PAYMENT", "PAID", "PROCESSING", "SHIPPED", "DELIVERED", "CANCELLED"} {
		s, err := ParseStatus(name)
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", name, err)
		}
		if string(s) != name {
			t.Fatalf("ParseStatus(%q) = %q", name, s)
		}
	}

	if _, err := ParseStatus("NOT_A_REAL_STATUS"); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	// status names are case sensitive, same as the stored column values
	if _, err := ParseStatus("paid"); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus for lowercase name, got %v", err)
	}
}

func TestCanCancel(t *testing.T) {
	cancellable := []Status{StatusPendingPayment, StatusPaid, StatusProcessing}
	for _, s := range cancellable {
		if !s.CanCancel() {
			t.Errorf("%s should be cancellable", s)
		}
	}
	for _, s := range []Status{StatusShipped, StatusDelivered, StatusCancelled} {
		if s.CanCancel() {
			t.Errorf("%s should not be cancellable", s)
		}
	}
}

func TestCanTransitionTo(t *testing.T) {
	if !StatusPendingPayment.CanTransitionTo(StatusPaid) {
		t.Error("PENDING_PAYMENT -> PAID should be legal")
	}
	if !StatusShipped.CanTransitionTo(StatusDelivered) {
		t.Error("SHIPPED -> DELIVERED should be legal")
	}
	if StatusShipped.CanTransitionTo(StatusCancelled) {
		t.Error("SHIPPED -> CANCELLED should be illegal")
	}
	if StatusDelivered.CanTransitionTo(StatusPendingPayment) {
		t.Error("DELIVERED is terminal")
	}
}
