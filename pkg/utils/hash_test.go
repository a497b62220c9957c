package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashString(""))
	assert.Len(t, HashString("jane@x.com"), 64)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@x.com", NormalizeEmail("  Jane@X.com "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestEmailDigest(t *testing.T) {
	assert.Len(t, EmailDigest("jane@x.com"), 12)
	assert.Equal(t, EmailDigest("jane@x.com"), EmailDigest(" JANE@x.com"))
}
