package settlement

import (
	"errors"
	"math"
	"testing"

	"github.com/layerx402/layerx402/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	q, err := NewQuoter(100)
	require.NoError(t, err)

	quote, err := q.Quote(1_000_000)
	require.NoError(t, err)
	assert.Equal(t, &types.SettlementQuote{
		GrossAmount:    1_000_000,
		FeeAmount:      10_000,
		NetAmount:      990_000,
		FeeBasisPoints: 100,
	}, quote)
}

func TestQuoteBounds(t *testing.T) {
	for _, bps := range []int64{0, 1, 250, 10_000} {
		q, err := NewQuoter(bps)
		require.NoError(t, err)

		for _, gross := range []int64{1, 999, 1_000_001, math.MaxInt64} {
			quote, err := q.Quote(gross)
			require.NoError(t, err)
			assert.Equal(t, gross, quote.FeeAmount+quote.NetAmount)
			assert.GreaterOrEqual(t, quote.NetAmount, int64(0))
		}
	}
}

func TestQuoteRejectsNonPositive(t *testing.T) {
	q, err := NewQuoter(100)
	require.NoError(t, err)

	for _, gross := range []int64{0, -1} {
		_, err := q.Quote(gross)
		var xerr *types.X402Error
		require.True(t, errors.As(err, &xerr))
		assert.Equal(t, types.ErrInvalidAmount, xerr.Code)
	}
}

func TestNewQuoterRejectsRate(t *testing.T) {
	for _, bps := range []int64{-1, 10_001} {
		_, err := NewQuoter(bps)
		assert.Error(t, err)
	}
}
