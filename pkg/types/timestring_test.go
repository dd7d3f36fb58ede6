package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "начало суток", value: "00:00"},
		{name: "конец суток", value: "23:59"},
		{name: "обычное время", value: "09:30"},
		{name: "без ведущего нуля", value: "9:30", wantErr: true},
		{name: "24 часа", value: "24:00", wantErr: true},
		{name: "60 минут", value: "10:60", wantErr: true},
		{name: "с секундами", value: "10:00:00", wantErr: true},
		{name: "пустая строка", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := MustTimeString("09:30")

	next, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), next)

	_, err = MustTimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, MustTimeString("09:00").IsBefore("09:01"))
	assert.False(t, MustTimeString("09:00").IsBefore("09:00"))
	assert.True(t, MustTimeString("17:00").IsAfter("09:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	date := time.Date(2025, 10, 13, 18, 45, 0, 0, loc)

	got, err := MustTimeString("10:15").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 13, 10, 15, 0, 0, loc), got)
}
