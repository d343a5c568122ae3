// phone.go converts locally formatted phone numbers into the international form
// required by the SMS gateway.
package validation

import "strings"

// CountryCallingCode is prepended in place of the national trunk prefix when
// formatting numbers for the SMS gateway.
const CountryCallingCode = "233"

// phoneSeparators are characters tolerated in user-entered phone numbers.
var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// stripPhoneSeparators removes spaces, dashes, and parentheses.
func stripPhoneSeparators(phone string) string {
	return phoneSeparators.Replace(phone)
}

// FormatPhoneNumber converts a local-format number (trunk "0" + nine digits)
// into the international form the SMS gateway expects: the trunk prefix is
// replaced by the country calling code. Numbers already carrying the country
// code pass through unchanged; any other shape gets the code prepended as-is.
// That last case is a known limitation rather than an error path: the gateway
// reports undeliverable destinations itself, so nothing is silently "fixed"
// beyond the prefix swap.
func FormatPhoneNumber(phone string) string {
	cleaned := stripPhoneSeparators(strings.TrimSpace(phone))

	if strings.HasPrefix(cleaned, "0") {
		return CountryCallingCode + cleaned[1:]
	}
	if strings.HasPrefix(cleaned, CountryCallingCode) {
		return cleaned
	}
	return CountryCallingCode + cleaned
}
