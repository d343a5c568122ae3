// Package models - registration.go defines the Registration entity persisted for each
// conference sign-up, together with the inbound request payload it is built from.
package models

import (
	"strconv"
	"strings"
	"time"
)

// RegistrationRequest is the payload submitted by the public registration form.
// It is ephemeral: after validation and normalization it is folded into a
// Registration and discarded. Consent is required at submission time but is not
// persisted with the record.
type RegistrationRequest struct {
	FullName              string   `json:"full_name"`
	PhoneNumber           string   `json:"phone_number"`
	Email                 string   `json:"email"`
	AgeRange              string   `json:"age_range"`
	Gender                string   `json:"gender"`
	AreaResidence         string   `json:"area_residence"`
	MedicalCondition      string   `json:"medical_condition"`
	StudentOrWorker       string   `json:"student_or_worker"`
	Occupation            string   `json:"occupation"`
	WillSleep             bool     `json:"will_sleep"`
	DaysAttending         []string `json:"days_attending"`
	EmergencyContactName  string   `json:"emergency_contact_name"`
	EmergencyContactPhone string   `json:"emergency_contact_phone"`
	DietaryRestrictions   string   `json:"dietary_restrictions"`
	Consent               bool     `json:"consent"`
}

// Registration represents a persisted conference registration.
// The phone number is unique across all records; SMSSent flips false→true at
// most once, after the confirmation message is confirmed delivered.
type Registration struct {
	ID                    string    `json:"id"`
	RegistrationNumber    string    `json:"registration_number"`
	FullName              string    `json:"full_name"`
	PhoneNumber           string    `json:"phone_number"`
	Email                 *string   `json:"email"`
	AgeRange              string    `json:"age_range"`
	Gender                string    `json:"gender"`
	AreaResidence         string    `json:"area_residence"`
	MedicalCondition      *string   `json:"medical_condition"`
	StudentOrWorker       string    `json:"student_or_worker"`
	Occupation            *string   `json:"occupation"`
	WillSleep             bool      `json:"will_sleep"`
	DaysAttending         []string  `json:"days_attending"`
	EmergencyContactName  string    `json:"emergency_contact_name"`
	EmergencyContactPhone string    `json:"emergency_contact_phone"`
	DietaryRestrictions   *string   `json:"dietary_restrictions"`
	SMSSent               bool      `json:"sms_sent"`
	CreatedAt             time.Time `json:"created_at"`
}

// FromRequest builds an unsaved Registration from a validated request and the
// generated registration number. ID and CreatedAt are assigned by the store at
// insert time.
func FromRequest(req *RegistrationRequest, registrationNumber string) *Registration {
	return &Registration{
		RegistrationNumber:    registrationNumber,
		FullName:              req.FullName,
		PhoneNumber:           req.PhoneNumber,
		Email:                 optional(req.Email),
		AgeRange:              req.AgeRange,
		Gender:                req.Gender,
		AreaResidence:         req.AreaResidence,
		MedicalCondition:      optional(req.MedicalCondition),
		StudentOrWorker:       req.StudentOrWorker,
		Occupation:            optional(req.Occupation),
		WillSleep:             req.WillSleep,
		DaysAttending:         req.DaysAttending,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		DietaryRestrictions:   optional(req.DietaryRestrictions),
		SMSSent:               false,
	}
}

// optional converts an empty string to a nil pointer so optional fields are
// stored as SQL NULL rather than empty strings.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CSVHeader returns the column headers for the admin CSV export, in the same
// order as CSVRecord.
func CSVHeader() []string {
	return []string{
		"registration_number", "full_name", "phone_number", "email", "age_range",
		"gender", "area_residence", "medical_condition", "student_or_worker",
		"occupation", "will_sleep", "days_attending", "emergency_contact_name",
		"emergency_contact_phone", "dietary_restrictions", "sms_sent", "created_at",
	}
}

// CSVRecord flattens the registration into one CSV row. Optional fields render
// as empty strings; days are joined with a semicolon so the row stays a single
// CSV field.
func (r *Registration) CSVRecord() []string {
	return []string{
		r.RegistrationNumber,
		r.FullName,
		r.PhoneNumber,
		deref(r.Email),
		r.AgeRange,
		r.Gender,
		r.AreaResidence,
		deref(r.MedicalCondition),
		r.StudentOrWorker,
		deref(r.Occupation),
		strconv.FormatBool(r.WillSleep),
		strings.Join(r.DaysAttending, ";"),
		r.EmergencyContactName,
		r.EmergencyContactPhone,
		deref(r.DietaryRestrictions),
		strconv.FormatBool(r.SMSSent),
		r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
