package validation

import "testing"

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"local with trunk zero", "0241234567", "233241234567"},
		{"already international", "233241234567", "233241234567"},
		{"bare subscriber number", "241234567", "233241234567"},
		{"spaces stripped", "024 123 4567", "233241234567"},
		{"dashes stripped", "024-123-4567", "233241234567"},
		{"parentheses stripped", "(024) 123 4567", "233241234567"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatPhoneNumber(tc.input); got != tc.want {
				t.Errorf("FormatPhoneNumber(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

// Separator placement must not change the destination number.
func TestFormatPhoneNumberSeparatorIndependence(t *testing.T) {
	variants := []string{
		"0241234567",
		"024 123 4567",
		"024-1234-567",
		"02 41 23 45 67",
	}
	want := FormatPhoneNumber(variants[0])
	for _, v := range variants {
		if got := FormatPhoneNumber(v); got != want {
			t.Errorf("FormatPhoneNumber(%q) = %q, want %q", v, got, want)
		}
	}
}
