package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid simple", username: "drjohnson", wantErr: false},
		{name: "valid with dots and dashes", username: "dr.johnson-2_a", wantErr: false},
		{name: "valid minimum length", username: "ab", wantErr: false},
		{name: "empty", username: "", wantErr: true},
		{name: "too short", username: "a", wantErr: true},
		{name: "too long", username: strings.Repeat("a", 151), wantErr: true},
		{name: "spaces", username: "dr johnson", wantErr: true},
		{name: "cyrillic", username: "доктор", wantErr: true},
		{name: "special characters", username: "dr@johnson", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret"))
	assert.NoError(t, ValidatePassword("a"))
	assert.Error(t, ValidatePassword(""))
}
