package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid last minute", input: "23:59"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "missing colon", input: "1200", wantErr: true},
		{name: "too short", input: "9:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "letters", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := ParseTimeString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 9, 15, 14, 7, 59, 0, time.UTC)
	assert.Equal(t, "14:07", NewTimeString(moment).String())
}

func TestTimeString_AddMinutes(t *testing.T) {
	start, err := ParseTimeString("10:00")
	require.NoError(t, err)

	end, err := start.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "11:30", end.String())

	// Переход через полночь недопустим
	late, err := ParseTimeString("23:30")
	require.NoError(t, err)
	_, err = late.AddMinutes(60)
	assert.Error(t, err)

	// Неположительная длительность недопустима
	_, err = start.AddMinutes(0)
	assert.Error(t, err)
	_, err = start.AddMinutes(-30)
	assert.Error(t, err)
}

func TestTimeString_Comparisons(t *testing.T) {
	a, _ := ParseTimeString("09:00")
	b, _ := ParseTimeString("10:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
	assert.False(t, a.IsBefore(a))
}

func TestFromMinutes(t *testing.T) {
	ts, err := FromMinutes(9*60 + 30)
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = FromMinutes(-1)
	assert.Error(t, err)
	_, err = FromMinutes(24 * 60)
	assert.Error(t, err)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// postgres отдает time-колонку как "HH:MM:SS"
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, "10:30", ts.String())

	require.NoError(t, ts.Scan([]byte("18:00:00")))
	assert.Equal(t, "18:00", ts.String())

	assert.Error(t, ts.Scan(42))
}
