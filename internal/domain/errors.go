package domain

import "errors"

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidPlan      = errors.New("invalid plan type")
	ErrNotFound         = errors.New("subscription not found")
	ErrStoreUnavailable = errors.New("subscription store unavailable")
)

// ArgumentError ошибка входных данных, Msg можно отдавать клиенту
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return e.Msg + ": " + ErrInvalidArgument.Error()
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func InvalidArgument(msg string) error {
	return &ArgumentError{Msg: msg}
}
