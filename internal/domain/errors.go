package domain

import (
	"errors"
	"fmt"
)

// ============================================================================
// Request Validation Errors
// ============================================================================

// ValidationError reports a request field that does not conform to the
// feature schema.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// ============================================================================
// Artifact Errors
// ============================================================================

var (
	ErrFeatureCountMismatch = errors.New("artifact feature count does not match the schema")
	ErrUnsupportedObjective = errors.New("model objective is not binary:logistic")
	ErrVectorLengthMismatch = errors.New("feature vector length does not match the schema")
)
