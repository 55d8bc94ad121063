package standardizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitFix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"A101", "101A"},
		{"101A", "101A"},
		{"15B2", "152B"},
		{"MAIN", "MAIN"},
		{"12345", "12345"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, unitFix(tt.input))
		})
	}
}

func TestApplyUnitFix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"single character", "A", "A"},
		{"lone letter merges forward", "A 101", "101A"},
		{"lone digits chain", "1 2 3 BILTMORE BLVD 101A", "123BILTMOREBLVD101A"},
		{"two lone letters", "A B", "AB"},
		{"trailing lone letter is kept", "123 MAIN ST A", "123MAINSTA"},
		{"reorders every word", "B12 A101", "12B101A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, applyUnitFix(tt.input))
		})
	}
}

func TestTruncateZipCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"AUSTIN TX 78701-0077", "AUSTIN TX 78701"},
		{"AUSTIN TX 787010077", "AUSTIN TX 78701"},
		{"AUSTIN TX 78701", "AUSTIN TX 78701"},
		{"ACCOUNT 1234567890", "ACCOUNT 1234567890"},
		{"12345-67890", "12345-67890"},
		{"1234-5678", "1234-5678"},
		{"110-120 MAYBERRY WAY", "110-120 MAYBERRY WAY"},
		{"78701-0077 AND 787020088", "78701 AND 78702"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateZipCode(tt.input))
		})
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "123 MAIN ST A101", cleanText("123 MAIN ST., #A-101"))
	assert.Equal(t, "", cleanText("#-/.,"))
	assert.Equal(t, "ABC", cleanText("a\tABC\n"))
}
