package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatIST(t *testing.T) {
	utc := time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "10 Mar 2024, 01:30 AM", FormatIST(utc, DisplayLayout))
}

func TestNow_InIST(t *testing.T) {
	_, offset := Now().Zone()
	assert.Equal(t, 5*60*60+30*60, offset)
}
