package domain

import (
	"errors"
	"fmt"
)

// ConflictReason distinguishes scheduling conflicts from vehicle availability
// so clients can react differently (reschedule vs. pick another bus).
type ConflictReason string

const (
	ConflictVehicleMaintenance ConflictReason = "vehicle_maintenance"
	ConflictSlotTaken          ConflictReason = "slot_taken"
	ConflictStateTerminal      ConflictReason = "state_terminal"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Reason   ConflictReason
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// UpstreamError marks a failure of the distance/geocoding provider after the
// built-in fallback. The only class a caller may reasonably retry later.
type UpstreamError struct {
	Provider string
	Msg      string
	Err      error
}

func (e UpstreamError) Error() string {
	switch {
	case e.Msg != "" && e.Provider != "":
		return fmt.Sprintf("%s: %s", e.Provider, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Provider != "":
		return fmt.Sprintf("%s unavailable", e.Provider)
	default:
		return "upstream unavailable"
	}
}

func (e UpstreamError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

// ConflictReasonOf returns the reason code of a conflict error, or "".
func ConflictReasonOf(err error) ConflictReason {
	var target ConflictError
	if errors.As(err, &target) {
		return target.Reason
	}
	return ""
}

func IsUpstream(err error) bool {
	var target UpstreamError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
