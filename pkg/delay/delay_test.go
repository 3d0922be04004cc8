package delay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		unit    Unit
		seconds uint64
	}{
		{name: "seconds", input: "10s", unit: Seconds, seconds: 10},
		{name: "minutes", input: "15m", unit: Minutes, seconds: 900},
		{name: "hours", input: "2h", unit: Hours, seconds: 7200},
		{name: "days", input: "3d", unit: Days, seconds: 259200},
		{name: "upper case", input: "5M", unit: Minutes, seconds: 300},
		{name: "unit word", input: "10 seconds", unit: Seconds, seconds: 10},
		{name: "short word", input: "10 mins", unit: Minutes, seconds: 600},
		{name: "no digits", input: "abc", unit: Unknown, seconds: 0},
		{name: "unknown unit", input: "10x", unit: Unknown, seconds: 0},
		{name: "missing unit", input: "10", unit: Unknown, seconds: 0},
		{name: "empty", input: "", unit: Unknown, seconds: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.unit, d.Unit)
			assert.Equal(t, tt.seconds, d.Seconds())
			assert.Equal(t, time.Duration(tt.seconds)*time.Second, d.Duration())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"1h30m", "99999999999999999999999s", "300000000000d"} {
		_, err := Parse(input)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, "input %q", input)
		assert.Equal(t, input, perr.Input)
	}
}

func TestDelayString(t *testing.T) {
	t.Parallel()
	d, err := Parse("15m")
	require.NoError(t, err)
	assert.Equal(t, "15 minutes", d.String())
	assert.Equal(t, "minutes", d.Unit.String())

	d, err = Parse("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", d.String())
	assert.Equal(t, "unknown", d.Unit.String())
}
