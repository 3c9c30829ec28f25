package security

import "testing"

func violationMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func TestDefaultPasswordValidator(t *testing.T) {
	v := DefaultPasswordValidator()

	cases := []struct {
		name     string
		password string
		want     string
	}{
		{"blank", "   ", "password can't be blank"},
		{"empty", "", "password can't be blank"},
		{"no lowercase", "PASSWORD1!", "Password must contain a lower case letter"},
		{"no uppercase", "password1!", "Password must contain an upper case letter"},
		{"no digit", "Password!", "Password must contain a number"},
		{"no special", "Password1", "Password must contain a special character"},
		{"underscore counts as special", "Password_1", ""},
		{"valid", "Password1!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := violationMessage(v.Validate(tc.password)); got != tc.want {
				t.Fatalf("Validate(%q) = %q, want %q", tc.password, got, tc.want)
			}
		})
	}
}

func TestValidatorReportsFirstViolationOnly(t *testing.T) {
	v := DefaultPasswordValidator()

	// "abc" violates the uppercase, digit and special rules; the
	// lowercase rule passes so the uppercase message wins.
	if got := violationMessage(v.Validate("abc")); got != "Password must contain an upper case letter" {
		t.Fatalf("Validate(\"abc\") = %q", got)
	}
}

func TestMinLengthRule(t *testing.T) {
	v := NewPasswordValidator(MinLengthRule{Min: 8})

	if got := violationMessage(v.Validate("short1!")); got != "Password must be at least 8 characters" {
		t.Fatalf("Validate = %q", got)
	}
	if err := v.Validate("long enough"); err != nil {
		t.Fatalf("Validate = %v, want nil", err)
	}
}
