package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/zeroshot-labs/label-hunter/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("label set is empty")

	if err.Error() != "label set is empty" {
		t.Errorf("expected 'label set is empty', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("decode failed")
	err := apperr.NewValidationWrap("invalid task config", inner)

	if err.Error() != "invalid task config: decode failed" {
		t.Errorf("expected 'invalid task config: decode failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("empty document collection")

	wrapped := fmt.Errorf("failed to score: %w", original)
	doubleWrapped := fmt.Errorf("pipeline error: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "empty document collection" {
		t.Errorf("expected 'empty document collection', got %q", ve.Message)
	}
}

func TestScoringUnavailable_SurvivesFmtWrapping(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	original := apperr.NewScoringUnavailable("nli server unreachable", inner)

	wrapped := fmt.Errorf("batch 3: %w", original)

	var se *apperr.ScoringUnavailableError
	if !errors.As(wrapped, &se) {
		t.Fatal("errors.As should find ScoringUnavailableError through wrapping")
	}
	if !errors.Is(wrapped, inner) {
		t.Error("expected inner error to survive wrapping")
	}
}

func TestInputTooLong_Message(t *testing.T) {
	err := apperr.NewInputTooLong(9000, 4096)

	want := "input of 9000 chars exceeds the service limit of 4096"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	unknownLimit := apperr.NewInputTooLong(9000, 0)
	if unknownLimit.Error() != "input exceeds the service maximum length" {
		t.Errorf("unexpected message: %q", unknownLimit.Error())
	}
}

func TestThresholdError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("scoring failed")
	wrapped := fmt.Errorf("pipeline error: %w", plain)

	var te *apperr.ThresholdError
	if errors.As(wrapped, &te) {
		t.Fatal("errors.As should NOT find ThresholdError in plain error chain")
	}
}
