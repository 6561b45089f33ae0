package llmjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "fenced object",
			input: "```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "object with surrounding prose",
			input: "Here you go:\n{\"a\": 1}\nHope that helps!",
			want:  `{"a": 1}`,
		},
		{
			name:  "nested braces",
			input: `{"a": {"b": 2}} trailing`,
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:  "braces inside string values",
			input: `{"msg": "look at {this}"}`,
			want:  `{"msg": "look at {this}"}`,
		},
		{
			name:    "no object",
			input:   "sorry, I can't do that",
			wantErr: true,
		},
		{
			name:    "unbalanced",
			input:   `{"a": 1`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractObject(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoJSON)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestUnmarshal(t *testing.T) {
	var out struct {
		Score int `json:"score"`
	}
	err := Unmarshal("```json\n{\"score\": 9}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, 9, out.Score)
}
