package validation

import (
	"strings"
	"testing"
)

type testRecord struct {
	Kind string `validate:"required,oneof=settlement corridor"`
	ID   string `validate:"omitempty,identifier"`
	Note string `validate:"max=8"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		record  any
		wantErr string
	}{
		{"valid", &testRecord{Kind: "settlement", ID: "Aldgate"}, ""},
		{"missing kind", &testRecord{ID: "x"}, "Kind: field is required"},
		{"bad kind", &testRecord{Kind: "river"}, "Kind: must be one of [settlement corridor]"},
		{"padded id", &testRecord{Kind: "settlement", ID: " x"}, "is not a valid identifier"},
		{"long note", &testRecord{Kind: "corridor", Note: "far too long"}, "Note: must not exceed 8"},
		{"nil", nil, "cannot be nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.record)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateStruct() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateStruct() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateIdentifier(t *testing.T) {
	valid := []string{"Aldgate", "Saint-Malo", "Żółw", "a b"}
	for _, id := range valid {
		if err := ValidateIdentifier(id); err != nil {
			t.Errorf("ValidateIdentifier(%q) = %v, want nil", id, err)
		}
	}

	invalid := []string{"", " lead", "trail\t", "bell\a", strings.Repeat("x", MaxIdentifierLength+1)}
	for _, id := range invalid {
		if err := ValidateIdentifier(id); err == nil {
			t.Errorf("ValidateIdentifier(%q) = nil, want error", id)
		}
	}
}
