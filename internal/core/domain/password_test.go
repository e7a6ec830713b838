package domain

import "testing"

func TestValidEmail(t *testing.T) {
	valid := []string{
		"ana@x.com",
		"first.last@sub.domain.io",
		"user+tag@example.co",
	}
	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local.com",
		"no-domain@",
		"no-tld@domain",
		"spaces in@local.com",
		"two@@ats.com",
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"valid", "Abc12345!", nil},
		{"valid all symbols", "x1!@#$%^&*", nil},
		{"too short", "Ab1!", ErrPasswordTooShort},
		{"seven chars", "Abc123!", ErrPasswordTooShort},
		{"no digit", "Abcdefgh!", ErrPasswordComplexity},
		{"no symbol", "Abcdefg1", ErrPasswordComplexity},
		{"forbidden char", "Abc12345?", ErrPasswordComplexity},
		{"space", "Abc 1234!", ErrPasswordComplexity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePassword(tt.password); got != tt.want {
				t.Fatalf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}
