package transaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-rr/steve-plugsurfing/pkg/transaction"
)

func TestParseQueryPeriod(t *testing.T) {
	for _, period := range []transaction.QueryPeriod{
		transaction.PeriodAll,
		transaction.PeriodToday,
		transaction.PeriodLast10,
		transaction.PeriodLast30,
		transaction.PeriodLast90,
		transaction.PeriodFromTo,
	} {
		parsed, err := transaction.ParseQueryPeriod(period.String())
		require.NoError(t, err)
		assert.Equal(t, period, parsed)
	}
}

func TestParseQueryPeriodUnknown(t *testing.T) {
	_, err := transaction.ParseQueryPeriod("last7")
	require.Error(t, err)
}

func TestQueryPeriodDays(t *testing.T) {
	assert.Equal(t, 10, transaction.PeriodLast10.Days())
	assert.Equal(t, 30, transaction.PeriodLast30.Days())
	assert.Equal(t, 90, transaction.PeriodLast90.Days())
	assert.Equal(t, 0, transaction.PeriodAll.Days())
	assert.Equal(t, 0, transaction.PeriodFromTo.Days())
}
