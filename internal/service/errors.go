package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Shivanand-hulikatti/community-hub/internal/observability"
)

// Kind classifies an expected business failure.
type Kind string

const (
	NotFound             Kind = "NOT_FOUND"
	NotEligible          Kind = "NOT_ELIGIBLE"
	NotBookable          Kind = "NOT_BOOKABLE"
	AlreadyBooked        Kind = "ALREADY_BOOKED"
	InvalidRating        Kind = "INVALID_RATING"
	EmptyComment         Kind = "EMPTY_COMMENT"
	DuplicateApplication Kind = "DUPLICATE_APPLICATION"
	InvalidInput         Kind = "INVALID_INPUT"
	InvalidTransition    Kind = "INVALID_TRANSITION"
	Forbidden            Kind = "FORBIDDEN"
	OperationFailed      Kind = "OPERATION_FAILED"
)

// Failure is the error every service operation returns for a known outcome.
// Message is safe to show to the caller; Err keeps the cause for logs.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Message + ": " + f.Err.Error()
	}
	return f.Message
}

func (f *Failure) Unwrap() error { return f.Err }

func fail(kind Kind, msg string, cause error) *Failure {
	return &Failure{Kind: kind, Message: msg, Err: cause}
}

// KindOf returns the Kind of err, or OperationFailed for anything that is
// not a *Failure.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return OperationFailed
}

// outcome is the metric label for err.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(KindOf(err))
}

// operationFailed logs an unexpected storage error and hides it behind msg.
func operationFailed(ctx context.Context, logger *slog.Logger, op, msg string, err error, attrs ...any) *Failure {
	args := append([]any{slog.String("op", op), slog.String("error", err.Error())}, attrs...)
	args = append(args, observability.ContextAttrs(ctx)...)
	logger.ErrorContext(ctx, "operation failed", args...)
	return fail(OperationFailed, msg, err)
}
