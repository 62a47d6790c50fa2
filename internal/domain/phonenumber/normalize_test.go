package phonenumber

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairPattern_KnownCorruptions(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		fixed bool
	}{
		{
			name:  "unescaped plus inside group",
			in:    `^(+84|84|0)[35789]\d{8}$`,
			want:  `^(\+84|84|0)[35789]\d{8}$`,
			fixed: true,
		},
		{
			name:  "bare digit quantifier",
			in:    `^(\+84|84|0)[35789]d{8}$`,
			want:  `^(\+84|84|0)[35789]\d{8}$`,
			fixed: true,
		},
		{
			name:  "double escaping",
			in:    `^\\+84\\d{9}$`,
			want:  `^\+84\d{9}$`,
			fixed: true,
		},
		{
			name:  "several corruptions at once",
			in:    `^(+84|84|0)[35789]d{8}$`,
			want:  `^(\+84|84|0)[35789]\d{8}$`,
			fixed: true,
		},
		{
			name:  "already correct",
			in:    `^(\+84|84|0)[35789]\d{8}$`,
			want:  `^(\+84|84|0)[35789]\d{8}$`,
			fixed: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, fixed := RepairPattern(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.fixed, fixed)

			// Every repaired pattern must compile.
			_, err := regexp.Compile(got)
			require.NoError(t, err)
		})
	}
}

func TestRepairPattern_Idempotent(t *testing.T) {
	inputs := []string{
		`^(+84|84|0)[35789]d{8}$`,
		`^(\+84|84|0)[35789]\d{8}$`,
		`^\\+84\\d{9}$`,
		`^0\d{9}$`,
	}
	for _, in := range inputs {
		once, _ := RepairPattern(in)
		twice, changed := RepairPattern(once)
		assert.Equal(t, once, twice, in)
		assert.False(t, changed, in)
	}
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "+84901234567", NormalizeNumber(" +84 (90) 123-45.67 "))
	assert.Equal(t, "0901234567", NormalizeNumber("090 123 4567"))
	assert.Equal(t, "", NormalizeNumber("   "))
	assert.Equal(t, "0901234567", NormalizeNumber("0901234567"), "clean input passes through")
}
