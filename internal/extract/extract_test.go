package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmails_FindsAllInOrder(t *testing.T) {
	text := "Write to info@bestbites.sg or bookings@bestbites.sg for reservations."
	assert.Equal(t, []string{"info@bestbites.sg", "bookings@bestbites.sg"}, Emails(text))
}

func TestEmails_NoMatchReturnsSentinel(t *testing.T) {
	assert.Equal(t, []string{"-"}, Emails("call us between 9am and 5pm"))
	assert.Equal(t, []string{"-"}, Emails(""))
}

func TestEmails_KeepsDuplicates(t *testing.T) {
	// Extraction is unfiltered; dedup happens during cleaning.
	text := "info@x.lk ... info@x.lk"
	assert.Equal(t, []string{"info@x.lk", "info@x.lk"}, Emails(text))
}

func TestPhones_FindsInternationalFormats(t *testing.T) {
	text := "Call +65 6123 4567 or 011-234-5678 today"
	got := Phones(text)
	assert.Equal(t, []string{"+65 6123 4567", "011-234-5678"}, got)
}

func TestPhones_NoMatchReturnsSentinel(t *testing.T) {
	assert.Equal(t, []string{"-"}, Phones("no numbers here"))
	// Too short to satisfy the 9-character minimum.
	assert.Equal(t, []string{"-"}, Phones("ext 12345"))
}

func TestPhones_MustStartAndEndWithDigit(t *testing.T) {
	got := Phones("fax: 0112 345 678 ")
	assert.Equal(t, []string{"0112 345 678"}, got)
}

func TestFound(t *testing.T) {
	assert.False(t, Found([]string{"-"}))
	assert.False(t, Found(nil))
	assert.True(t, Found([]string{"a@b.lk"}))
}
