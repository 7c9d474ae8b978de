package errors

import (
	"testing"
)

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "missing_data_rows.txt", false},
		{"nested", "out/rows/missing.json", false},
		{"absolute", "/tmp/missing.txt", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 5000)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateFilePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		schemes []string
		wantErr bool
	}{
		{"redis", "redis://localhost:6379/0", []string{"redis://", "rediss://"}, false},
		{"rediss", "rediss://cache:6380", []string{"redis://", "rediss://"}, false},
		{"mongodb", "mongodb://localhost:27017", []string{"mongodb://", "mongodb+srv://"}, false},
		{"mongodb srv", "mongodb+srv://cluster.example.com", []string{"mongodb://", "mongodb+srv://"}, false},

		{"empty", "", []string{"redis://"}, true},
		{"wrong scheme", "http://localhost:6379", []string{"redis://"}, true},
		{"no scheme", "localhost:6379", []string{"redis://"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input, tt.schemes...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "missing_rows", false},
		{"dotted", "lottery.missing", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 130)), true},
		{"system prefix", "system.users", true},
		{"dollar", "rows$", true},
		{"space", "missing rows", true},
		{"null byte", "rows\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCollectionName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCollectionName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
