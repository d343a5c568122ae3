package validation

import (
	"strings"
	"testing"

	"github.com/event-registration/registration-backend/internal/db/models"
)

// validRequest returns a payload that passes every rule. Individual tests
// mutate one field at a time.
func validRequest() *models.RegistrationRequest {
	return &models.RegistrationRequest{
		FullName:              "Abena Mensah",
		PhoneNumber:           "0241234567",
		Email:                 "abena@example.com",
		AgeRange:              "18-25",
		Gender:                "Female",
		AreaResidence:         "Adenta",
		MedicalCondition:      "",
		StudentOrWorker:       "Student",
		Occupation:            "",
		WillSleep:             true,
		DaysAttending:         []string{"day1", "day3"},
		EmergencyContactName:  "Kofi Mensah",
		EmergencyContactPhone: "0209876543",
		DietaryRestrictions:   "",
		Consent:               true,
	}
}

func fieldsOf(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func hasField(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateRegistration_Valid(t *testing.T) {
	errs := ValidateRegistration(validRequest())
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRegistration_FieldRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.RegistrationRequest)
		wantField string
	}{
		{"full name too short", func(r *models.RegistrationRequest) { r.FullName = "Ab" }, "full_name"},
		{"full name too long", func(r *models.RegistrationRequest) { r.FullName = strings.Repeat("a", 101) }, "full_name"},
		{"phone missing trunk zero", func(r *models.RegistrationRequest) { r.PhoneNumber = "241234567" }, "phone_number"},
		{"phone too short", func(r *models.RegistrationRequest) { r.PhoneNumber = "024123" }, "phone_number"},
		{"phone with letters", func(r *models.RegistrationRequest) { r.PhoneNumber = "02412345ab" }, "phone_number"},
		{"bad email", func(r *models.RegistrationRequest) { r.Email = "not-an-email" }, "email"},
		{"unknown age range", func(r *models.RegistrationRequest) { r.AgeRange = "40-50" }, "age_range"},
		{"unknown gender", func(r *models.RegistrationRequest) { r.Gender = "Other" }, "gender"},
		{"area too short", func(r *models.RegistrationRequest) { r.AreaResidence = "A" }, "area_residence"},
		{"medical condition too long", func(r *models.RegistrationRequest) { r.MedicalCondition = strings.Repeat("x", 501) }, "medical_condition"},
		{"unknown student/worker", func(r *models.RegistrationRequest) { r.StudentOrWorker = "Retired" }, "student_or_worker"},
		{"occupation too long", func(r *models.RegistrationRequest) { r.Occupation = strings.Repeat("x", 101) }, "occupation"},
		{"no days selected", func(r *models.RegistrationRequest) { r.DaysAttending = nil }, "days_attending"},
		{"unknown day", func(r *models.RegistrationRequest) { r.DaysAttending = []string{"day9"} }, "days_attending"},
		{"duplicate day", func(r *models.RegistrationRequest) { r.DaysAttending = []string{"day1", "day1"} }, "days_attending"},
		{"emergency name too short", func(r *models.RegistrationRequest) { r.EmergencyContactName = "Jo" }, "emergency_contact_name"},
		{"emergency phone invalid", func(r *models.RegistrationRequest) { r.EmergencyContactPhone = "12345" }, "emergency_contact_phone"},
		{"dietary too long", func(r *models.RegistrationRequest) { r.DietaryRestrictions = strings.Repeat("x", 201) }, "dietary_restrictions"},
		{"consent missing", func(r *models.RegistrationRequest) { r.Consent = false }, "consent"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			errs := ValidateRegistration(req)
			if !hasField(errs, tc.wantField) {
				t.Errorf("expected error on %q, got fields %v", tc.wantField, fieldsOf(errs))
			}
		})
	}
}

func TestValidateRegistration_OptionalFieldsMayBeEmpty(t *testing.T) {
	req := validRequest()
	req.Email = ""
	req.MedicalCondition = ""
	req.Occupation = ""
	req.DietaryRestrictions = ""

	if errs := ValidateRegistration(req); len(errs) != 0 {
		t.Errorf("expected no errors with empty optional fields, got %v", errs)
	}
}

func TestValidateRegistration_NormalizesInPlace(t *testing.T) {
	req := validRequest()
	req.FullName = "  Abena Mensah  "
	req.PhoneNumber = "024 123 4567"
	req.EmergencyContactPhone = "020-987-6543"

	errs := ValidateRegistration(req)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if req.FullName != "Abena Mensah" {
		t.Errorf("FullName not trimmed: %q", req.FullName)
	}
	if req.PhoneNumber != "0241234567" {
		t.Errorf("PhoneNumber separators not stripped: %q", req.PhoneNumber)
	}
	if req.EmergencyContactPhone != "0209876543" {
		t.Errorf("EmergencyContactPhone separators not stripped: %q", req.EmergencyContactPhone)
	}
}

func TestValidateRegistration_CollectsAllErrors(t *testing.T) {
	req := &models.RegistrationRequest{}
	errs := ValidateRegistration(req)

	for _, field := range []string{"full_name", "phone_number", "age_range", "gender", "days_attending", "consent"} {
		if !hasField(errs, field) {
			t.Errorf("expected error on %q, got fields %v", field, fieldsOf(errs))
		}
	}
}
