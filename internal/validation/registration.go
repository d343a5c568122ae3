// registration.go validates and normalizes inbound registration payloads against the
// form schema: required string lengths, closed enum sets, phone format, and the
// at-least-one-day attendance rule.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/event-registration/registration-backend/internal/db/models"
)

// Closed sets for enumerated fields. These mirror the options offered by the
// registration form; anything outside them is rejected.
var (
	AgeRanges        = []string{"12-17", "18-25", "26-35", "36+"}
	Genders          = []string{"Male", "Female"}
	StudentOrWorkers = []string{"Student", "Worker"}
	EventDays        = []string{"day1", "day2", "day3", "day4", "day5"}
)

// localPhonePattern matches the national mobile format: a trunk "0" followed by
// nine digits. Separators are stripped before matching.
var localPhonePattern = regexp.MustCompile(`^0[0-9]{9}$`)

// emailPattern is a deliberately loose shape check; deliverability is not verified.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// FieldError describes a single validation failure on a named field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// ValidateRegistration checks req against the form schema and returns all
// field-level violations. The request is normalized in place (fields trimmed,
// phone separators stripped) before the rules run, so a nil return means req is
// ready for persistence. No storage or network access happens here.
func ValidateRegistration(req *models.RegistrationRequest) []FieldError {
	normalize(req)

	var errs []FieldError

	errs = appendLengthErr(errs, "full_name", req.FullName, 3, 100)
	if !localPhonePattern.MatchString(req.PhoneNumber) {
		errs = append(errs, FieldError{"phone_number", "must be a valid local mobile number (e.g. 0241234567)"})
	}
	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		errs = append(errs, FieldError{"email", "invalid email address"})
	}
	errs = appendEnumErr(errs, "age_range", req.AgeRange, AgeRanges)
	errs = appendEnumErr(errs, "gender", req.Gender, Genders)
	errs = appendLengthErr(errs, "area_residence", req.AreaResidence, 2, 100)
	if len(req.MedicalCondition) > 500 {
		errs = append(errs, FieldError{"medical_condition", "must be at most 500 characters"})
	}
	errs = appendEnumErr(errs, "student_or_worker", req.StudentOrWorker, StudentOrWorkers)
	if len(req.Occupation) > 100 {
		errs = append(errs, FieldError{"occupation", "must be at most 100 characters"})
	}
	errs = append(errs, validateDays(req.DaysAttending)...)
	errs = appendLengthErr(errs, "emergency_contact_name", req.EmergencyContactName, 3, 100)
	if !localPhonePattern.MatchString(req.EmergencyContactPhone) {
		errs = append(errs, FieldError{"emergency_contact_phone", "must be a valid local mobile number"})
	}
	if len(req.DietaryRestrictions) > 200 {
		errs = append(errs, FieldError{"dietary_restrictions", "must be at most 200 characters"})
	}
	if !req.Consent {
		errs = append(errs, FieldError{"consent", "you must agree to receive updates"})
	}

	return errs
}

// normalize trims whitespace on all string fields and strips separator
// characters from phone fields so "024 123 4567" and "0241234567" validate
// identically.
func normalize(req *models.RegistrationRequest) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.PhoneNumber = stripPhoneSeparators(strings.TrimSpace(req.PhoneNumber))
	req.Email = strings.TrimSpace(req.Email)
	req.AgeRange = strings.TrimSpace(req.AgeRange)
	req.Gender = strings.TrimSpace(req.Gender)
	req.AreaResidence = strings.TrimSpace(req.AreaResidence)
	req.MedicalCondition = strings.TrimSpace(req.MedicalCondition)
	req.StudentOrWorker = strings.TrimSpace(req.StudentOrWorker)
	req.Occupation = strings.TrimSpace(req.Occupation)
	req.EmergencyContactName = strings.TrimSpace(req.EmergencyContactName)
	req.EmergencyContactPhone = stripPhoneSeparators(strings.TrimSpace(req.EmergencyContactPhone))
	req.DietaryRestrictions = strings.TrimSpace(req.DietaryRestrictions)
	for i, d := range req.DaysAttending {
		req.DaysAttending[i] = strings.TrimSpace(d)
	}
}

func validateDays(days []string) []FieldError {
	if len(days) == 0 {
		return []FieldError{{"days_attending", "select at least one day"}}
	}
	var errs []FieldError
	seen := map[string]bool{}
	for _, d := range days {
		if !contains(EventDays, d) {
			errs = append(errs, FieldError{"days_attending", fmt.Sprintf("unknown day %q", d)})
			continue
		}
		if seen[d] {
			errs = append(errs, FieldError{"days_attending", fmt.Sprintf("day %q selected twice", d)})
		}
		seen[d] = true
	}
	return errs
}

func appendLengthErr(errs []FieldError, field, value string, min, max int) []FieldError {
	if len(value) < min {
		return append(errs, FieldError{field, fmt.Sprintf("must be at least %d characters", min)})
	}
	if len(value) > max {
		return append(errs, FieldError{field, fmt.Sprintf("must be at most %d characters", max)})
	}
	return errs
}

func appendEnumErr(errs []FieldError, field, value string, allowed []string) []FieldError {
	if !contains(allowed, value) {
		return append(errs, FieldError{field, "must be one of: " + strings.Join(allowed, ", ")})
	}
	return errs
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
