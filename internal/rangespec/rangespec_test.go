// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rangespec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPresentAndNonBlank(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"   ", false},
		{"\t\n ", false},
		{"1-3,5-7", true},
		{"  2-4 ", true},
		{"garbage", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPresentAndNonBlank(tt.input), "input %q", tt.input)
	}
}

func TestSerializeIsPassthrough(t *testing.T) {
	for _, s := range []string{"1-3,5-7", " 2-4 ", "x"} {
		assert.Equal(t, s, Serialize(s))
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []PageRange
		wantErr string
	}{
		{"ranges", "1-3,5-7", []PageRange{{1, 3}, {5, 7}}, ""},
		{"single page", "5", []PageRange{{5, 5}}, ""},
		{"mixed with spaces", " 1 - 2 , 4 ", []PageRange{{1, 2}, {4, 4}}, ""},
		{"empty", "  ", nil, "empty"},
		{"reversed", "3-1", nil, "invalid page range"},
		{"zero page", "0-2", nil, "invalid page range"},
		{"not a number", "a-b", nil, "cannot parse"},
		{"trailing comma", "1-2,", nil, "cannot parse"},
		{"too many dashes", "1-2-3", nil, "cannot parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageRange(t *testing.T) {
	r := PageRange{Start: 2, End: 4}
	assert.Equal(t, "2-4", r.String())
	assert.Equal(t, 3, r.Pages())
}
