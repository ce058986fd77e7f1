package helpers

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// GetNullString converts a string pointer to sql.NullString.
func GetNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// GetContentNullString converts a string to sql.NullString, treating "" as NULL.
func GetContentNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// StringPtr converts a scanned sql.NullString back to a pointer
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// NullFloat converts a float pointer to sql.NullFloat64
func NullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// FloatPtr converts a scanned sql.NullFloat64 back to a pointer
func FloatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

// ToJSONText encodes v for a TEXT column holding JSON; nil slices are stored as []
func ToJSONText(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode json column: %w", err)
	}
	if string(b) == "null" {
		return "[]", nil
	}
	return string(b), nil
}

// FromJSONText decodes a TEXT column holding JSON into dst; empty text leaves dst untouched
func FromJSONText(text sql.NullString, dst interface{}) error {
	if !text.Valid || text.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(text.String), dst); err != nil {
		return fmt.Errorf("failed to decode json column: %w", err)
	}
	return nil
}
