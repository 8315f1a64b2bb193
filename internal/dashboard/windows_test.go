package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailingCalendarMonths(t *testing.T) {
	nows := []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 8, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC),
	}

	for _, now := range nows {
		t.Run(now.Format(time.RFC3339), func(t *testing.T) {
			months := trailingCalendarMonths(now, 12)
			require.Len(t, months, 12)
			assert.Equal(t, yearMonthOf(now), months[11])
			for i := 1; i < len(months); i++ {
				prev, cur := months[i-1], months[i]
				assert.Less(t, prev.Key(), cur.Key())
				assert.Equal(t, prev.Year*12+prev.Month+1, cur.Year*12+cur.Month)
			}
		})
	}
}

func TestTrailingCalendarMonths_Keys(t *testing.T) {
	months := trailingCalendarMonths(time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), 12)

	keys := make([]string, 0, len(months))
	for _, m := range months {
		keys = append(keys, m.Key())
	}
	assert.Equal(t, []string{
		"2023-04", "2023-05", "2023-06", "2023-07", "2023-08", "2023-09",
		"2023-10", "2023-11", "2023-12", "2024-01", "2024-02", "2024-03",
	}, keys)
}

func TestTrailingDays(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2023, time.June, 16, 12, 0, 0, 0, time.UTC), trailingDays(now, 365))
	assert.Equal(t, now, trailingDays(now, 0))
}
