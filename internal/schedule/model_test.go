package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	for _, p := range Periods {
		got, err := ParsePeriod(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	for _, raw := range []string{"", "night", "Morning", "MORNING", "tarde"} {
		_, err := ParsePeriod(raw)
		assert.Error(t, err, "period %q must be rejected", raw)
	}
}
