package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spooky-finn/orderbook-merger/internal/domain"
)

func TestTopNSorted_BidsDescending(t *testing.T) {
	raw := [][2]string{{"100.0", "1"}, {"102.0", "1"}, {"101.0", "1"}}
	levels, err := TopNSorted(raw, domain.ExchangeBinance, 10, true)
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Equal(t, "102", levels[0].Price.String())
	assert.Equal(t, "101", levels[1].Price.String())
	assert.Equal(t, "100", levels[2].Price.String())
}

func TestTopNSorted_AsksAscending(t *testing.T) {
	raw := [][2]string{{"102.0", "1"}, {"100.0", "1"}, {"101.0", "1"}}
	levels, err := TopNSorted(raw, domain.ExchangeBinance, 10, false)
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Equal(t, "100", levels[0].Price.String())
	assert.Equal(t, "101", levels[1].Price.String())
	assert.Equal(t, "102", levels[2].Price.String())
}

func TestTopNSorted_DropsZeroAmountLevels(t *testing.T) {
	raw := [][2]string{{"100.0", "0"}, {"101.0", "1"}}
	levels, err := TopNSorted(raw, domain.ExchangeBinance, 10, true)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, "101", levels[0].Price.String())
}

func TestTopNSorted_TruncatesToDepth(t *testing.T) {
	raw := [][2]string{{"100.0", "1"}, {"101.0", "1"}, {"102.0", "1"}}
	levels, err := TopNSorted(raw, domain.ExchangeBinance, 2, true)
	require.NoError(t, err)
	assert.Len(t, levels, 2)
}

func TestTopNSorted_InvalidLevelErrors(t *testing.T) {
	raw := [][2]string{{"not-a-price", "1"}}
	_, err := TopNSorted(raw, domain.ExchangeBinance, 10, true)
	assert.Error(t, err)
}

func TestTopNSorted_StampsExchange(t *testing.T) {
	raw := [][2]string{{"100.0", "1"}}
	levels, err := TopNSorted(raw, domain.ExchangeKucoin, 10, true)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, domain.ExchangeKucoin, levels[0].Exchange)
}
