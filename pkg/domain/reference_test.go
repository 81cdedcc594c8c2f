package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantName    string
		wantPresent bool
	}{
		{
			name:        "structured object with name",
			input:       `{"id": "123", "name": "Raja"}`,
			wantName:    "Raja",
			wantPresent: true,
		},
		{
			name:        "structured object with full_name only",
			input:       `{"id": "123", "full_name": "Raja Kumar"}`,
			wantName:    "Raja Kumar",
			wantPresent: true,
		},
		{
			name:        "name wins over full_name",
			input:       `{"name": "Raja", "full_name": "Raja Kumar"}`,
			wantName:    "Raja",
			wantPresent: true,
		},
		{
			name:        "plain string",
			input:       `"Raja"`,
			wantName:    "Raja",
			wantPresent: true,
		},
		{
			name:        "null",
			input:       `null`,
			wantName:    "",
			wantPresent: false,
		},
		{
			name:        "numeric scalar taken verbatim",
			input:       `42`,
			wantName:    "42",
			wantPresent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref Reference
			err := json.Unmarshal([]byte(tt.input), &ref)
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, ref.Name)
			assert.Equal(t, tt.wantPresent, ref.Present())
		})
	}
}

func TestReference_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		want     string
	}{
		{
			name:     "absent resolves to fallback",
			input:    `null`,
			fallback: OwnerUnassigned,
			want:     "Unassigned",
		},
		{
			name:     "present but unnamed resolves to Unknown",
			input:    `{"id": "123"}`,
			fallback: OwnerUnassigned,
			want:     "Unknown",
		},
		{
			name:     "whitespace-only name resolves to Unknown",
			input:    `"   "`,
			fallback: OwnerUnassigned,
			want:     "Unknown",
		},
		{
			name:     "named object resolves to its name",
			input:    `{"name": "Raja"}`,
			fallback: OwnerUnassigned,
			want:     "Raja",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref Reference
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ref))
			assert.Equal(t, tt.want, ref.DisplayName(tt.fallback))
		})
	}
}

func TestReferenceNames(t *testing.T) {
	var refs []Reference
	require.NoError(t, json.Unmarshal([]byte(`[{"name": "hot"}, null, "priority", {"id": "1"}]`), &refs))

	assert.Equal(t, []string{"hot", "priority"}, ReferenceNames(refs))
	assert.Nil(t, ReferenceNames(nil))
}
