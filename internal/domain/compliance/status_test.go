package compliance

import (
	"errors"
	"testing"
)

func TestInspectionTransitions(t *testing.T) {
	cases := []struct {
		from    InspectionStatus
		to      InspectionStatus
		allowed bool
	}{
		{InspectionPending, InspectionInProgress, true},
		{InspectionPending, InspectionCancelled, true},
		{InspectionPending, InspectionCompleted, false},
		{InspectionInProgress, InspectionCompleted, true},
		{InspectionInProgress, InspectionCancelled, true},
		{InspectionInProgress, InspectionPending, false},
		{InspectionCompleted, InspectionCancelled, false},
		{InspectionCancelled, InspectionInProgress, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestInspectionStatusIsTerminal(t *testing.T) {
	if InspectionPending.IsTerminal() || InspectionInProgress.IsTerminal() {
		t.Fatalf("pending/in_progress must not be terminal")
	}
	if !InspectionCompleted.IsTerminal() || !InspectionCancelled.IsTerminal() {
		t.Fatalf("completed/cancelled must be terminal")
	}
}

func TestSeverityWeight(t *testing.T) {
	if SeverityCritical.Weight() != 3 || SeverityMajor.Weight() != 2 || SeverityMinor.Weight() != 1 {
		t.Fatalf("severity weights = %d/%d/%d", SeverityCritical.Weight(), SeverityMajor.Weight(), SeverityMinor.Weight())
	}
}

func TestParseHelpersRejectUnknownValues(t *testing.T) {
	if _, err := ParseInspectionPriority("asap"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("ParseInspectionPriority() error = %v, want ErrInvalidValue", err)
	}
	if _, err := ParseViolationSeverity("fatal"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("ParseViolationSeverity() error = %v, want ErrInvalidValue", err)
	}
	if _, err := ParseResponseValue("maybe"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("ParseResponseValue() error = %v, want ErrInvalidValue", err)
	}
	if _, err := ParseRiskCategory("extreme"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("ParseRiskCategory() error = %v, want ErrInvalidValue", err)
	}
}

func TestParseHelpersNormalizeCaseAndSpace(t *testing.T) {
	priority, err := ParseInspectionPriority(" Urgent ")
	if err != nil {
		t.Fatalf("ParseInspectionPriority() error = %v", err)
	}
	if priority != PriorityUrgent {
		t.Fatalf("ParseInspectionPriority() = %q", priority)
	}

	value, err := ParseResponseValue("PASS")
	if err != nil {
		t.Fatalf("ParseResponseValue() error = %v", err)
	}
	if value != ResponsePass {
		t.Fatalf("ParseResponseValue() = %q", value)
	}
}

func TestTransitionErrorUnwrapsToInvalidTransition(t *testing.T) {
	err := NewTransitionError("inspection", "HSI-2026-06-0001", "pending", "completed")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("errors.Is(ErrInvalidTransition) = false for %v", err)
	}

	var transitionErr *TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("errors.As(*TransitionError) = false")
	}
	if transitionErr.From != "pending" || transitionErr.To != "completed" {
		t.Fatalf("TransitionError = %+v", transitionErr)
	}
}
