package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidIBAN(t *testing.T) {
	valid := []string{
		"BE68539007547034",
		"NL91ABNA0417164300",
		"DE89370400440532013000",
		"FR1420041010050500013M02606",
		"LU280019400644750000",
	}
	for _, iban := range valid {
		assert.True(t, ValidIBAN(iban), "expected %s to be valid", iban)
	}

	invalid := []string{
		"BE68539007547035",       // checksum off by one
		"BE0053900754703",        // check digits zeroed
		"XX68539007547034",       // checksum fails for unknown country layout
		"BE68 5390 0754 7034",    // caller must normalize first
		"be68539007547034",       // lower case rejected pre-normalization
		"BE685390",               // too short
		"",
	}
	for _, iban := range invalid {
		assert.False(t, ValidIBAN(iban), "expected %s to be rejected", iban)
	}
}

func TestIBANNormalizationIdempotent(t *testing.T) {
	raw := "be68 5390 0754 7034"
	once := NormalizeIBAN(raw)
	twice := NormalizeIBAN(once)

	assert.Equal(t, once, twice)
	assert.Equal(t, ValidIBAN(once), ValidIBAN(twice),
		"validation outcome must not change under repeated normalization")
	assert.True(t, ValidIBAN(once))
}

func TestValidBIC(t *testing.T) {
	assert.True(t, ValidBIC("GEBABEBB"))
	assert.True(t, ValidBIC("GEBABEBB36A"))
	assert.False(t, ValidBIC("GEBABEBB1"))
	assert.False(t, ValidBIC("GEBAB3BB"), "country code must be letters")
	assert.False(t, ValidBIC(""))
}
