package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxAnswerLength   = 64
	MinUserNameLength = 2
	MaxUserNameLength = 50
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateAnswer checks a submitted spelling before it is graded
func ValidateAnswer(answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return ValidationError{Field: "userAnswer", Message: "answer is required"}
	}
	if utf8.RuneCountInString(answer) > MaxAnswerLength {
		return ValidationError{Field: "userAnswer", Message: fmt.Sprintf("answer must be at most %d characters", MaxAnswerLength)}
	}
	return nil
}

// ValidateUserName checks if a child's name is valid
func ValidateUserName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	n := utf8.RuneCountInString(name)
	if n < MinUserNameLength {
		return ValidationError{Field: "name", Message: fmt.Sprintf("name must be at least %d characters", MinUserNameLength)}
	}
	if n > MaxUserNameLength {
		return ValidationError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", MaxUserNameLength)}
	}
	return nil
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateOptionalEmail accepts an empty address
func ValidateOptionalEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	return ValidateEmail(email)
}

// ValidateLevelNumber checks that a level number is positive
func ValidateLevelNumber(levelNumber int) error {
	if levelNumber < 1 {
		return ValidationError{Field: "levelNumber", Message: "level number must be at least 1"}
	}
	return nil
}
