package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrongPassword(t *testing.T) {
	valid := []string{"Pass@1234", "aB3$efgh", "Secur3!pwd"}
	for _, p := range valid {
		assert.True(t, strongPassword(p), "expected %q to pass", p)
	}

	invalid := []string{
		"",
		"Sh0rt!a",     // too short
		"alllower1!",  // no uppercase
		"ALLUPPER1!",  // no lowercase
		"NoDigits!!",  // no digit
		"NoSpecial12", // no special character
	}
	for _, p := range invalid {
		assert.False(t, strongPassword(p), "expected %q to fail", p)
	}
}
