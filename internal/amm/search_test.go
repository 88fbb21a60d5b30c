package amm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBestTradeExactInValidation(t *testing.T) {
	f := newFixture(t)
	amount := currencyAmt(t, token0, 100)

	_, err := BestTradeExactIn(nil, amount, token2, DefaultSearchOptions())
	require.ErrorIs(t, err, ErrEmptyPools)

	_, err = BestTradeExactIn([]*Pool{f.p02}, amount, token2, SearchOptions{MaxNumResults: 3, MaxHops: 0})
	require.ErrorIs(t, err, ErrZeroMaxHops)
}

func TestBestTradeExactIn(t *testing.T) {
	f := newFixture(t)
	pools := []*Pool{f.p01, f.p02, f.p12}

	result, err := BestTradeExactIn(pools, currencyAmt(t, token0, 100), token2, DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, result, 2)

	require.Len(t, result[0].Route().Pools(), 1)
	require.Equal(t, []Token{token0, token2}, result[0].Route().Path())
	require.Equal(t, "100", rawOf(result[0].InputAmount()))
	require.Equal(t, "99", rawOf(result[0].OutputAmount()))

	require.Len(t, result[1].Route().Pools(), 2)
	require.Equal(t, []Token{token0, token1, token2}, result[1].Route().Path())
	require.Equal(t, "100", rawOf(result[1].InputAmount()))
	require.Equal(t, "69", rawOf(result[1].OutputAmount()))
}

func TestBestTradeExactInSkipsUnusablePools(t *testing.T) {
	f := newFixture(t)

	result, err := BestTradeExactIn([]*Pool{f.empty01}, currencyAmt(t, token0, 100), token1, DefaultSearchOptions())
	require.NoError(t, err)
	require.Empty(t, result)

	// 1 wei of t0 buys nothing through p01 but 1 wei of t2 through p02
	result, err = BestTradeExactIn([]*Pool{f.p01, f.p02, f.p12}, currencyAmt(t, token0, 1), token2, DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, []Token{token0, token2}, result[0].Route().Path())
	require.Equal(t, "1", rawOf(result[0].OutputAmount()))
}

func TestBestTradeExactInLimits(t *testing.T) {
	f := newFixture(t)
	pools := []*Pool{f.p01, f.p02, f.p12}

	result, err := BestTradeExactIn(pools, currencyAmt(t, token0, 10), token2, SearchOptions{MaxNumResults: 3, MaxHops: 1})
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, []Token{token0, token2}, result[0].Route().Path())

	result, err = BestTradeExactIn(pools, currencyAmt(t, token0, 10), token2, SearchOptions{MaxNumResults: 1, MaxHops: 3})
	require.NoError(t, err)
	require.Len(t, result, 1)

	result, err = BestTradeExactIn(pools, currencyAmt(t, token0, 10), token2, SearchOptions{MaxNumResults: 0, MaxHops: 3})
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestBestTradeExactInNoPath(t *testing.T) {
	f := newFixture(t)
	result, err := BestTradeExactIn([]*Pool{f.p01, f.p03, f.p13}, currencyAmt(t, token0, 10), token2, SearchOptions{MaxNumResults: 1, MaxHops: 3})
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestBestTradeExactInNative(t *testing.T) {
	f := newFixture(t)
	native := bnb(t)

	result, err := BestTradeExactIn([]*Pool{f.pW0, f.p02}, currencyAmt(t, native, 100), token2, DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.True(t, result[0].InputAmount().Currency().Equal(native))
	require.Equal(t, []Token{wbnb(t), token0, token2}, result[0].Route().Path())

	result, err = BestTradeExactIn([]*Pool{f.p02, f.pW0}, currencyAmt(t, token2, 100), native, DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.True(t, result[0].OutputAmount().Currency().IsNative())
}

func TestBestTradeExactInLeavesPoolsAlone(t *testing.T) {
	f := newFixture(t)
	pools := []*Pool{f.p01, f.p02, f.p12, f.p13, f.p03}
	snapshot := append([]*Pool(nil), pools...)

	_, err := BestTradeExactIn(pools, currencyAmt(t, token0, 100), token2, DefaultSearchOptions())
	require.NoError(t, err)
	require.Equal(t, snapshot, pools)
	require.Equal(t, "1000", rawOf(f.p01.Reserve0()))
}

func TestBestTradeExactOutValidation(t *testing.T) {
	f := newFixture(t)
	amount := currencyAmt(t, token2, 100)

	_, err := BestTradeExactOut(nil, token0, amount, DefaultSearchOptions())
	require.ErrorIs(t, err, ErrEmptyPools)

	_, err = BestTradeExactOut([]*Pool{f.p02}, token0, amount, SearchOptions{MaxNumResults: 3, MaxHops: 0})
	require.ErrorIs(t, err, ErrZeroMaxHops)
}

func TestBestTradeExactOut(t *testing.T) {
	f := newFixture(t)
	pools := []*Pool{f.p01, f.p02, f.p12}

	result, err := BestTradeExactOut(pools, token0, currencyAmt(t, token2, 100), DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, result, 2)

	require.Len(t, result[0].Route().Pools(), 1)
	require.Equal(t, []Token{token0, token2}, result[0].Route().Path())
	require.Equal(t, "101", rawOf(result[0].InputAmount()))
	require.Equal(t, "100", rawOf(result[0].OutputAmount()))

	require.Len(t, result[1].Route().Pools(), 2)
	require.Equal(t, []Token{token0, token1, token2}, result[1].Route().Path())
	require.Equal(t, "156", rawOf(result[1].InputAmount()))
	require.Equal(t, "100", rawOf(result[1].OutputAmount()))
}

func TestBestTradeExactOutSkipsUnusablePools(t *testing.T) {
	f := newFixture(t)
	pools := []*Pool{f.p01, f.p02, f.p12}

	result, err := BestTradeExactOut([]*Pool{f.empty01}, token1, currencyAmt(t, token0, 100), DefaultSearchOptions())
	require.NoError(t, err)
	require.Empty(t, result)

	result, err = BestTradeExactOut(pools, token0, currencyAmt(t, token2, 1200), SearchOptions{MaxNumResults: 3, MaxHops: 1})
	require.NoError(t, err)
	require.Empty(t, result)

	result, err = BestTradeExactOut(pools, token0, currencyAmt(t, token2, 1050), DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, result, 1)
}

func TestBestTradeExactOutLimits(t *testing.T) {
	f := newFixture(t)
	pools := []*Pool{f.p01, f.p02, f.p12}

	result, err := BestTradeExactOut(pools, token0, currencyAmt(t, token2, 10), SearchOptions{MaxNumResults: 3, MaxHops: 1})
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, []Token{token0, token2}, result[0].Route().Path())

	result, err = BestTradeExactOut(pools, token0, currencyAmt(t, token2, 10), SearchOptions{MaxNumResults: 1, MaxHops: 3})
	require.NoError(t, err)
	require.Len(t, result, 1)

	result, err = BestTradeExactOut([]*Pool{f.p01, f.p03, f.p13}, token0, currencyAmt(t, token2, 10), SearchOptions{MaxNumResults: 1, MaxHops: 3})
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestBestTradeRespectsMaxHopsBelowDefault(t *testing.T) {
	f := newFixture(t)
	// t0 -> t3 -> t1 -> t2 needs three hops
	pools := []*Pool{f.p03, f.p13, f.p12}

	result, err := BestTradeExactIn(pools, currencyAmt(t, token0, 100), token2, SearchOptions{MaxNumResults: 3, MaxHops: 2})
	require.NoError(t, err)
	require.Empty(t, result)

	result, err = BestTradeExactIn(pools, currencyAmt(t, token0, 100), token2, SearchOptions{MaxNumResults: 3, MaxHops: 3})
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, 3, result[0].Route().Hops())

	result, err = BestTradeExactOut(pools, token0, currencyAmt(t, token2, 10), SearchOptions{MaxNumResults: 3, MaxHops: 2})
	require.NoError(t, err)
	require.Empty(t, result)

	result, err = BestTradeExactOut(pools, token0, currencyAmt(t, token2, 10), SearchOptions{MaxNumResults: 3, MaxHops: 3})
	require.NoError(t, err)
	require.Len(t, result, 1)
}

func TestInsertTradeKeepsOrderAndLimit(t *testing.T) {
	f := newFixture(t)
	direct, err := NewRoute([]*Pool{f.p02}, token0, token2)
	require.NoError(t, err)
	twoHop, err := NewRoute([]*Pool{f.p01, f.p12}, token0, token2)
	require.NoError(t, err)
	good, err := NewTrade(direct, currencyAmt(t, token0, 100), ExactInput)
	require.NoError(t, err)
	bad, err := NewTrade(twoHop, currencyAmt(t, token0, 100), ExactInput)
	require.NoError(t, err)

	best := insertTrade(nil, bad, 2)
	next := insertTrade(best, good, 2)
	require.Equal(t, []*Trade{good, bad}, next)
	require.Equal(t, []*Trade{bad}, best)

	require.Equal(t, []*Trade{good}, insertTrade(next, bad, 1)[:1])
	require.Len(t, insertTrade(next, bad, 2), 2)
}

func TestBestTradeIgnoresRepeatedPools(t *testing.T) {
	f := newFixture(t)

	result, err := BestTradeExactIn([]*Pool{f.p02, f.p02}, currencyAmt(t, token0, 100), token0, DefaultSearchOptions())
	require.NoError(t, err)
	require.Empty(t, result)

	result, err = BestTradeExactIn([]*Pool{f.p02, f.p01, f.p02, f.p12}, currencyAmt(t, token0, 100), token2, DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.NotEqual(t, result[0].Route().Path(), result[1].Route().Path())

	// a second snapshot of the same pair counts as the same pool
	again := newPool(t, token0, 1000, token2, 1100)
	result, err = BestTradeExactOut([]*Pool{f.p02, again}, token0, currencyAmt(t, token2, 100), DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, result, 1)
}

func TestBestTradeExactOutZeroAmount(t *testing.T) {
	f := newFixture(t)

	result, err := BestTradeExactOut([]*Pool{f.p01, f.p02, f.p12}, token0, currencyAmt(t, token2, 0), DefaultSearchOptions())
	require.NoError(t, err)
	require.Empty(t, result)
}
