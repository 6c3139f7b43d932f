package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"budi", "budi.santoso", "budi_s", "budi-s", "Budi123"}
	invalid := []string{"", "budi santoso", "budi@school", "budi!", "büdi"}
	for _, u := range valid {
		if !IsValidUsername(u) {
			t.Errorf("IsValidUsername(%q) = false, want true", u)
		}
	}
	for _, u := range invalid {
		if IsValidUsername(u) {
			t.Errorf("IsValidUsername(%q) = true, want false", u)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123", "12.3"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-03-10"); !ok {
		t.Error(`IsValidDate("2025-03-10") = false, want true`)
	}
	invalid := []string{"", "10-03-2025", "2025-13-01", "2025-03-32", "not-a-date"}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidNIS(t *testing.T) {
	valid := []string{"1234", "20250001", "12345678901234567890"}
	invalid := []string{"", "123", "123456789012345678901", "12a4", "12 34"}
	for _, s := range valid {
		if !IsValidNIS(s) {
			t.Errorf("IsValidNIS(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidNIS(s) {
			t.Errorf("IsValidNIS(%q) = true, want false", s)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"081234567890", "+62 812-3456-7890", "62812345678"}
	invalid := []string{"", "1234567", "abcdefghij", "+62", "1234567890123456"}
	for _, s := range valid {
		if !IsValidPhoneNumber(s) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidPhoneNumber(s) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "username", Message: "Username is required"},
		{Field: "flag", Message: "Invalid flag"},
	}

	want := "username: Username is required; flag: Invalid flag"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	m := errs.ToMap()
	if m["username"] != "Username is required" || m["flag"] != "Invalid flag" {
		t.Errorf("ToMap() = %v", m)
	}
}
