package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMaritalStatus(t *testing.T) {
	for _, raw := range []string{"Single", "single", "SINGLE", " Single "} {
		got, ok := ParseMaritalStatus(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, MaritalSingle, got)
	}

	for _, raw := range []string{"Married", "married", "MARRIED"} {
		got, ok := ParseMaritalStatus(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, MaritalMarried, got)
	}

	for _, raw := range []string{"", "divorced", "widowed", "unknown"} {
		_, ok := ParseMaritalStatus(raw)
		assert.False(t, ok, raw)
	}
}

func TestIsEligible(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		marital  string
		flatType string
		want     bool
	}{
		{"single 35 smaller tier", 35, "Single", FlatTypeSmaller, true},
		{"single 34 smaller tier", 34, "Single", FlatTypeSmaller, false},
		{"single 40 larger tier", 40, "Single", FlatTypeLarger, false},
		{"married 21 smaller tier", 21, "Married", FlatTypeSmaller, true},
		{"married 21 larger tier", 21, "Married", FlatTypeLarger, true},
		{"married 20 larger tier", 20, "Married", FlatTypeLarger, false},
		{"case-insensitive flat type", 35, "Single", "2-room", true},
		{"unknown marital fails closed", 40, "Divorced", FlatTypeSmaller, false},
		{"unknown flat type", 40, "Married", "5-Room", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEligible(tt.age, tt.marital, tt.flatType))
		})
	}
}

func TestValidNRIC(t *testing.T) {
	for _, nric := range []string{"S1234567A", "T7654321B"} {
		assert.True(t, ValidNRIC(nric), nric)
	}
	for _, nric := range []string{"s1234567a", "A1234567B", "S123456A", "S12345678", "S1234567"} {
		assert.False(t, ValidNRIC(nric), nric)
	}
}

func TestFlatTypeEquals(t *testing.T) {
	assert.True(t, FlatTypeEquals("2-Room", "2-room"))
	assert.True(t, FlatTypeEquals(" 3-Room ", "3-ROOM"))
	assert.False(t, FlatTypeEquals("2-Room", "3-Room"))
}
