package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"pharmtrace/pkg/domain"
)

func TestNotFoundErrorMessages(t *testing.T) {
	withID := domain.NotFoundError{Entity: domain.EntityUser, ID: "u-1"}
	if withID.Error() != "user u-1 not found" {
		t.Fatalf("unexpected message %q", withID.Error())
	}
	empty := domain.NotFoundError{Entity: domain.EntitySupplyChainEvent}
	if !strings.HasPrefix(empty.Error(), "no matching") {
		t.Fatalf("unexpected message %q", empty.Error())
	}
}

func TestErrorsUnwrapAsValues(t *testing.T) {
	wrapped := fmt.Errorf("record event: %w", domain.InvalidPayloadError{Field: "location"})
	var invalid domain.InvalidPayloadError
	if !errors.As(wrapped, &invalid) || invalid.Field != "location" {
		t.Fatalf("expected invalid payload, got %v", wrapped)
	}

	wrapped = fmt.Errorf("log temperature: %w", domain.TemperatureExcursionError{PharmaceuticalID: "p-1", TemperatureC: 11})
	var excursion domain.TemperatureExcursionError
	if !errors.As(wrapped, &excursion) || excursion.PharmaceuticalID != "p-1" {
		t.Fatalf("expected excursion, got %v", wrapped)
	}
	if !strings.Contains(excursion.Error(), "11.0") {
		t.Fatalf("unexpected message %q", excursion.Error())
	}
}

func TestResultMergeAndBlocking(t *testing.T) {
	var combined domain.Result
	combined.Merge(domain.Result{})
	if combined.HasBlocking() || len(combined.Violations) != 0 {
		t.Fatalf("empty merge must stay empty")
	}

	combined.Merge(domain.Result{Violations: []domain.Violation{
		{Rule: "a", Severity: domain.SeverityWarn},
	}})
	if combined.HasBlocking() {
		t.Fatalf("warn is not blocking")
	}
	combined.Merge(domain.Result{Violations: []domain.Violation{
		{Rule: "b", Severity: domain.SeverityBlock},
	}})
	if !combined.HasBlocking() {
		t.Fatalf("expected blocking after merge")
	}
	if len(combined.Violations) != 2 {
		t.Fatalf("expected accumulated violations, got %d", len(combined.Violations))
	}

	err := domain.RuleViolationError{Result: combined}
	if err.Error() == "" {
		t.Fatalf("expected message")
	}
}

func TestKnownEnumerations(t *testing.T) {
	if !domain.KnownRole(domain.RoleManufacturer) || domain.KnownRole("pirate") {
		t.Fatalf("role validation broken")
	}
	if !domain.KnownEventType(domain.EventRecallInitiated) || domain.KnownEventType("teleportation") {
		t.Fatalf("event type validation broken")
	}
	if !domain.KnownRewardType(domain.RewardQualityReport) || domain.KnownRewardType("confetti") {
		t.Fatalf("reward type validation broken")
	}
	if !domain.KnownRecallSeverity(domain.SeverityCritical) || domain.KnownRecallSeverity("Extreme") {
		t.Fatalf("severity validation broken")
	}
}
