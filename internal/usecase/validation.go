package usecase

import (
	"regexp"
	"strings"

	"github.com/articlepost/account-service/internal/core/domain"
)

var (
	onlyAlphabets   = regexp.MustCompile(`^[ a-zA-Z]+$`)
	userNamePattern = regexp.MustCompile(`^[a-zA-Z0-9.\-\s]*$`)
	onlyDigits      = regexp.MustCompile(`^\d+$`)
	emailPattern    = regexp.MustCompile("^(([^<>(){}~`|/%*?$'=^&#\\[\\]\\\\.,;:!\\s@\"]+(\\.[^-<>()\\[\\]\\\\.,!;:\\s@\"]+)*)|(\".+\"))@((\\[[0-9]{1,3}\\.[0-9]{1,3}\\.[0-9]{1,3}\\.[0-9]{1,3}\\])|(([a-zA-Z\\-0-9]+\\.)+[a-zA-Z]{2,}))$")
)

// RegisterInput carries everything needed to create an account. The
// profile image is optional and already uploaded by the caller.
type RegisterInput struct {
	Name         string
	Gender       string
	UserName     string
	Email        string
	Phone        string
	Password     string
	ProfileImage domain.ProfileImage
}

// validateProfile checks the registration fields in a fixed order and
// returns the first violation. Both the ordering and the message text
// are load-bearing: clients display them as-is.
func validateProfile(in RegisterInput) *ValidationError {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Message: "Name can't be blank"}
	}
	if !onlyAlphabets.MatchString(in.Name) {
		return &ValidationError{Message: "Name can only contain alphabets"}
	}

	if strings.TrimSpace(in.UserName) == "" {
		return &ValidationError{Message: "UserName can't be blank"}
	}
	if !userNamePattern.MatchString(in.UserName) {
		return &ValidationError{Message: "UserName can only contain alphabets, numbers and special characters(-.)"}
	}

	if strings.TrimSpace(in.Gender) == "" {
		return &ValidationError{Message: "Gender can't be blank"}
	}
	if !domain.ValidGender(in.Gender) {
		return &ValidationError{Message: "please select valid gender"}
	}

	if strings.TrimSpace(in.Email) == "" {
		return &ValidationError{Message: "email can't be blank"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		return &ValidationError{Message: "Invalid email address"}
	}

	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return &ValidationError{Message: "Phone number can't be blank"}
	}
	if len(phone) != 10 {
		return &ValidationError{Message: "Phone number must be at least 10 characters"}
	}
	if !onlyDigits.MatchString(phone) {
		return &ValidationError{Message: "Phone number must be digits"}
	}

	return nil
}
