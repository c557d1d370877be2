package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodePromptNotFound  = "PRM001"
	ErrCodeInvalidInput    = "PRM002"
	ErrCodeVersionNotFound = "PRM003"
	ErrCodeDuplicatePrompt = "PRM004"
)

// Errors
var (
	ErrPromptNotFound  = errors.New("prompt not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrVersionNotFound = errors.New("version not found")
	ErrDuplicatePrompt = errors.New("prompt already exists")
)

// PromptError custom error type
type PromptError struct {
	Code    string
	Message string
	Err     error
}

func (e *PromptError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *PromptError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewPromptNotFoundError(id string) *PromptError {
	return &PromptError{
		Code:    ErrCodePromptNotFound,
		Message: fmt.Sprintf("Prompt %q not found", id),
		Err:     ErrPromptNotFound,
	}
}

// NewInvalidInputError keeps the validation details in the message and
// still matches ErrInvalidInput with errors.Is.
func NewInvalidInputError(err error) *PromptError {
	return &PromptError{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("Invalid input: %v", err),
		Err:     ErrInvalidInput,
	}
}

func NewVersionNotFoundError(id string, number int) *PromptError {
	return &PromptError{
		Code:    ErrCodeVersionNotFound,
		Message: fmt.Sprintf("Version %d of prompt %q not found", number, id),
		Err:     ErrVersionNotFound,
	}
}

func NewDuplicatePromptError(id string) *PromptError {
	return &PromptError{
		Code:    ErrCodeDuplicatePrompt,
		Message: fmt.Sprintf("Prompt %q already exists", id),
		Err:     ErrDuplicatePrompt,
	}
}
