package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordbooking/NB-BookingCore/pkg/types"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"10:00", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"10:60", false},
		{"1000", false},
		{"", false},
		{"ten o'clock", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, err := types.NewTimeStringFromString(tt.input)

			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.input, ts.String())
			} else {
				assert.ErrorIs(t, err, types.ErrInvalidTimeString)
			}
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := types.TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	_, err = types.TimeString("bad").Minutes()
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name     string
		start    types.TimeString
		minutes  int
		expected types.TimeString
		wantErr  bool
	}{
		{"simple shift", "10:00", 90, "11:30", false},
		{"across hour", "10:45", 30, "11:15", false},
		{"to end of day", "23:00", 60, "24:00", false},
		{"past midnight", "23:30", 60, "", true},
		{"negative past start of day", "00:30", -60, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.start.AddMinutes(tt.minutes)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, types.TimeString("09:00").IsBefore("10:00"))
	assert.False(t, types.TimeString("10:00").IsBefore("10:00"))
	assert.True(t, types.TimeString("10:01").IsAfter("10:00"))
	assert.True(t, types.TimeString("24:00").IsAfter("23:59"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts types.TimeString

	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, types.TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("18:45:12")))
	assert.Equal(t, types.TimeString("18:45"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, types.TimeString("09:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := types.TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = types.TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = types.TimeString("99:99").Value()
	assert.Error(t, err)
}
