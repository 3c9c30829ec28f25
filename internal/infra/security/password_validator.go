package security

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// PasswordRule is a single check in a password policy chain. Evaluate
// returns an error carrying the user-visible violation message.
type PasswordRule interface {
	Code() string
	Evaluate(password string) error
}

// PasswordValidator runs its rules in order and reports the first
// violation. The rule order is user visible through the returned
// message, so callers should not reorder the default chain.
type PasswordValidator struct {
	rules []PasswordRule
}

func NewPasswordValidator(rules ...PasswordRule) *PasswordValidator {
	return &PasswordValidator{rules: rules}
}

// DefaultPasswordValidator returns the policy applied to every password
// accepted by the service: non blank, with at least one lower case
// letter, one upper case letter, one digit and one special character.
func DefaultPasswordValidator() *PasswordValidator {
	return NewPasswordValidator(
		NotBlankRule{},
		LowercaseRule{},
		UppercaseRule{},
		DigitRule{},
		SpecialCharacterRule{},
	)
}

// Validate returns the first violation, or nil for a conforming password.
func (v *PasswordValidator) Validate(password string) error {
	for _, rule := range v.rules {
		if err := rule.Evaluate(password); err != nil {
			return err
		}
	}
	return nil
}

type NotBlankRule struct{}

func (NotBlankRule) Code() string { return "blank" }

func (NotBlankRule) Evaluate(password string) error {
	if strings.TrimSpace(password) == "" {
		return errors.New("password can't be blank")
	}
	return nil
}

type LowercaseRule struct{}

func (LowercaseRule) Code() string { return "lowercase" }

func (LowercaseRule) Evaluate(password string) error {
	for _, r := range password {
		if unicode.IsLower(r) {
			return nil
		}
	}
	return errors.New("Password must contain a lower case letter")
}

type UppercaseRule struct{}

func (UppercaseRule) Code() string { return "uppercase" }

func (UppercaseRule) Evaluate(password string) error {
	for _, r := range password {
		if unicode.IsUpper(r) {
			return nil
		}
	}
	return errors.New("Password must contain an upper case letter")
}

type DigitRule struct{}

func (DigitRule) Code() string { return "digit" }

func (DigitRule) Evaluate(password string) error {
	for _, r := range password {
		if r >= '0' && r <= '9' {
			return nil
		}
	}
	return errors.New("Password must contain a number")
}

const specialCharacters = "!@#%&$*|_^"

type SpecialCharacterRule struct{}

func (SpecialCharacterRule) Code() string { return "special_character" }

func (SpecialCharacterRule) Evaluate(password string) error {
	if strings.ContainsAny(password, specialCharacters) {
		return nil
	}
	return errors.New("Password must contain a special character")
}

// MinLengthRule is not part of the default chain; it is available for
// deployments that want to tighten the policy.
type MinLengthRule struct {
	Min int
}

func (MinLengthRule) Code() string { return "min_length" }

func (r MinLengthRule) Evaluate(password string) error {
	if len(password) < r.Min {
		return fmt.Errorf("Password must be at least %d characters", r.Min)
	}
	return nil
}
