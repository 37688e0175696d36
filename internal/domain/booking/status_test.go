package booking

import (
	"testing"

	"github.com/servihub/marketplace-api/internal/httperr"
)

func TestParseAction(t *testing.T) {
	if _, err := ParseAction("accept"); err != nil {
		t.Errorf("ParseAction(accept) error = %v", err)
	}
	if _, err := ParseAction("reject"); err != nil {
		t.Errorf("ParseAction(reject) error = %v", err)
	}
	if _, err := ParseAction("complete"); !httperr.IsBusiness(err, "invalid_action") {
		t.Errorf("ParseAction(complete) error = %v, want invalid_action", err)
	}
	if _, err := ParseAction(""); !httperr.IsBusiness(err, "invalid_action") {
		t.Errorf("ParseAction(\"\") error = %v, want invalid_action", err)
	}
}

func TestResolve(t *testing.T) {
	got, err := Resolve(StatusPending, ActionAccept)
	if err != nil || got != StatusAccepted {
		t.Errorf("Resolve(pending, accept) = %v, %v", got, err)
	}

	got, err = Resolve(StatusPending, ActionReject)
	if err != nil || got != StatusRejected {
		t.Errorf("Resolve(pending, reject) = %v, %v", got, err)
	}

	// No transition out of a resolved state.
	for _, s := range []Status{StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled} {
		if _, err := Resolve(s, ActionAccept); !httperr.IsBusiness(err, "already_resolved") {
			t.Errorf("Resolve(%s, accept) error = %v, want already_resolved", s, err)
		}
	}
}

func TestBlocking(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusAccepted, true},
		{StatusRejected, false},
		{StatusCompleted, false},
		{StatusCancelled, false},
	}
	for _, tt := range tests {
		if got := tt.status.Blocking(); got != tt.want {
			t.Errorf("%s.Blocking() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
