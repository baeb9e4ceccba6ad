package service

import (
	"errors"
	"fmt"
)

// Error kinds returned by the game and progress services. Callers match them with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
)

// GameError carries an error kind and a message meant for the caller
type GameError struct {
	Kind    error
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

func (e *GameError) Unwrap() error {
	return e.Kind
}

// ErrAlreadyCompleted is returned when a completed session is played or finished again
var ErrAlreadyCompleted = &GameError{Kind: ErrInvalidState, Message: "game session already completed"}

func notFound(format string, args ...interface{}) error {
	return &GameError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...interface{}) error {
	return &GameError{Kind: ErrInvalidState, Message: fmt.Sprintf(format, args...)}
}

func invalidInput(err error) error {
	return &GameError{Kind: ErrValidation, Message: err.Error()}
}
