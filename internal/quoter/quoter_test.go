package quoter

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"swapScope/internal/amm"
	"swapScope/internal/chains"
	"swapScope/internal/model"
)

const (
	addr0 = "0x0000000000000000000000000000000000000001"
	addr1 = "0x0000000000000000000000000000000000000002"
	addr2 = "0x0000000000000000000000000000000000000003"
	addr3 = "0x0000000000000000000000000000000000000004"
)

func wbnbAddress(t *testing.T) string {
	t.Helper()
	cfg, err := chains.Lookup(chains.BSCMainnet)
	require.NoError(t, err)
	return cfg.WrappedNative.Address.Hex()
}

func snapshot(a string, reserveA string, b string, reserveB string) model.PoolSnapshot {
	return model.PoolSnapshot{
		ChainID:  chains.BSCMainnet,
		Token0:   model.TokenMeta{Address: a, Decimals: 18},
		Token1:   model.TokenMeta{Address: b, Decimals: 18},
		Reserve0: reserveA,
		Reserve1: reserveB,
	}
}

func newTestBook(t *testing.T) *Book {
	t.Helper()
	book := NewBook(nil, nil)
	loaded, skipped := book.Load([]model.PoolSnapshot{
		snapshot(addr0, "1000", addr1, "1000"),
		snapshot(addr0, "1000", addr2, "1100"),
		snapshot(addr1, "1200", addr2, "1000"),
		snapshot(wbnbAddress(t), "1000", addr0, "1000"),
	})
	require.Equal(t, 4, loaded)
	require.Zero(t, skipped)
	return book
}

func newTestQuoter(t *testing.T) *Quoter {
	t.Helper()
	return New(newTestBook(t), DefaultConfig(), nil)
}

func TestBookAdd(t *testing.T) {
	book := newTestBook(t)

	pools := book.Pools(chains.BSCMainnet)
	require.Len(t, pools, 4)
	require.Empty(t, book.Pools(chains.BSCTestnet))

	token, ok := book.Token(chains.BSCMainnet, common.HexToAddress(addr2))
	require.True(t, ok)
	require.Equal(t, uint8(18), token.Decimals())

	pool, err := book.Pair(chains.BSCMainnet, common.HexToAddress(addr2), common.HexToAddress(addr0))
	require.NoError(t, err)
	require.Equal(t, pools[1], pool)

	_, err = book.Pair(chains.BSCMainnet, common.HexToAddress(addr0), common.HexToAddress(addr3))
	require.ErrorIs(t, err, ErrUnknownPool)
}

func TestBookCurrency(t *testing.T) {
	book := newTestBook(t)

	native, err := book.Currency(chains.BSCMainnet, "NATIVE")
	require.NoError(t, err)
	require.True(t, native.IsNative())
	require.Equal(t, "BNB", native.Symbol())

	_, err = book.Currency(chains.BSCMainnet, addr3)
	require.ErrorIs(t, err, ErrUnknownToken)

	_, err = book.Currency(chains.BSCMainnet, "0x12")
	require.Error(t, err)

	_, err = book.Currency(1, "native")
	require.ErrorIs(t, err, chains.ErrUnknownChain)

	_, err = book.Currency(1, addr0)
	require.ErrorIs(t, err, chains.ErrUnknownChain)
}

func TestBookRejectsBadSnapshots(t *testing.T) {
	book := NewBook(nil, nil)
	_, err := book.Add(snapshot(addr0, "1000", addr1, "1000"))
	require.NoError(t, err)

	bad := snapshot(addr0, "1000", addr2, "1000")
	bad.Token0.Decimals = 6
	_, err = book.Add(bad)
	require.ErrorIs(t, err, ErrTokenConflict)

	_, err = book.Add(snapshot(addr0, "12.5", addr2, "1000"))
	require.Error(t, err)

	_, err = book.Add(snapshot(addr0, "-1", addr2, "1000"))
	require.ErrorIs(t, err, amm.ErrNegativeAmount)

	_, err = book.Add(snapshot(addr0, "1000", addr0, "1000"))
	require.ErrorIs(t, err, amm.ErrIdenticalAddresses)

	unknown := snapshot(addr0, "1000", addr2, "1000")
	unknown.ChainID = 1
	_, err = book.Add(unknown)
	require.ErrorIs(t, err, chains.ErrUnknownChain)

	loaded, skipped := book.Load([]model.PoolSnapshot{bad, unknown, snapshot(addr1, "5", addr2, "5")})
	require.Equal(t, 1, loaded)
	require.Equal(t, 2, skipped)
}

func TestBookKeepsNewestSnapshot(t *testing.T) {
	book := NewBook(nil, nil)

	newer := snapshot(addr0, "2000", addr1, "2000")
	newer.BlockNumber = 20
	_, err := book.Add(newer)
	require.NoError(t, err)

	older := snapshot(addr1, "1000", addr0, "1000")
	older.BlockNumber = 10
	pool, err := book.Add(older)
	require.NoError(t, err)
	require.Equal(t, "2000", pool.Reserve0().Raw().String())

	latest := snapshot(addr0, "3000", addr1, "3000")
	latest.BlockNumber = 30
	_, err = book.Add(latest)
	require.NoError(t, err)

	pools := book.Pools(chains.BSCMainnet)
	require.Len(t, pools, 1)
	require.Equal(t, "3000", pools[0].Reserve0().Raw().String())
}

func TestBookAcceptsMismatchedAddress(t *testing.T) {
	book := NewBook(nil, nil)
	s := snapshot(addr0, "1000", addr1, "1000")
	s.Address = addr3

	pool, err := book.Add(s)
	require.NoError(t, err)
	require.NotEqual(t, common.HexToAddress(addr3), pool.Address())

	s.Address = "nope"
	_, err = book.Add(s)
	require.Error(t, err)
}

func TestQuoteExactIn(t *testing.T) {
	q := newTestQuoter(t)

	result, err := q.Quote(model.QuoteRequest{
		ID:        "a",
		ChainID:   chains.BSCMainnet,
		TokenIn:   addr0,
		TokenOut:  addr2,
		Amount:    "100",
		TradeType: "exact_in",
	})
	require.NoError(t, err)
	require.Equal(t, "a", result.ID)
	require.Equal(t, "exact_in", result.TradeType)
	require.Equal(t, "0.50%", result.Slippage)
	require.Len(t, result.Routes, 2)

	best := result.Routes[0]
	require.Equal(t, []string{addr0, addr2}, best.Path)
	require.Len(t, best.Pools, 1)
	require.Equal(t, "100", best.AmountIn)
	require.Equal(t, "99", best.AmountOut)
	require.Equal(t, "98", best.MinimumAmountOut)
	require.Equal(t, "100", best.MaximumAmountIn)
	require.Equal(t, "0.99", best.ExecutionPrice)
	require.Equal(t, "1.1", best.MidPrice)

	second := result.Routes[1]
	require.Equal(t, []string{addr0, addr1, addr2}, second.Path)
	require.Equal(t, "69", second.AmountOut)
	require.Equal(t, "68", second.MinimumAmountOut)
}

func TestQuoteExactOut(t *testing.T) {
	q := newTestQuoter(t)

	result, err := q.Quote(model.QuoteRequest{
		ChainID:   chains.BSCMainnet,
		TokenIn:   addr0,
		TokenOut:  addr2,
		Amount:    "100",
		TradeType: "exact_out",
		Slippage:  "0.5",
	})
	require.NoError(t, err)
	require.Len(t, result.Routes, 2)
	require.Equal(t, "101", result.Routes[0].AmountIn)
	require.Equal(t, "102", result.Routes[0].MaximumAmountIn)
	require.Equal(t, "100", result.Routes[0].MinimumAmountOut)
	require.Equal(t, "156", result.Routes[1].AmountIn)
	require.Equal(t, "157", result.Routes[1].MaximumAmountIn)
}

func TestQuoteRequestLimits(t *testing.T) {
	q := newTestQuoter(t)

	result, err := q.Quote(model.QuoteRequest{
		ChainID:  chains.BSCMainnet,
		TokenIn:  addr0,
		TokenOut: addr2,
		Amount:   "100",
		MaxHops:  1,
	})
	require.NoError(t, err)
	require.Len(t, result.Routes, 1)

	result, err = q.Quote(model.QuoteRequest{
		ChainID:    chains.BSCMainnet,
		TokenIn:    addr0,
		TokenOut:   addr2,
		Amount:     "100",
		MaxResults: 1,
	})
	require.NoError(t, err)
	require.Len(t, result.Routes, 1)
	require.Equal(t, "99", result.Routes[0].AmountOut)
}

func TestQuoteExplicitPath(t *testing.T) {
	q := newTestQuoter(t)

	result, err := q.Quote(model.QuoteRequest{
		ChainID:   chains.BSCMainnet,
		TokenIn:   addr0,
		TokenOut:  addr2,
		Amount:    "100",
		TradeType: "exact_in",
		Path:      []string{addr0, addr1, addr2},
	})
	require.NoError(t, err)
	require.Len(t, result.Routes, 1)
	require.Equal(t, "69", result.Routes[0].AmountOut)
	require.Len(t, result.Routes[0].Pools, 2)

	_, err = q.Quote(model.QuoteRequest{
		ChainID:  chains.BSCMainnet,
		TokenIn:  addr0,
		TokenOut: addr2,
		Amount:   "100",
		Path:     []string{addr0},
	})
	require.ErrorIs(t, err, amm.ErrInvalidPath)

	_, err = q.Quote(model.QuoteRequest{
		ChainID:  chains.BSCMainnet,
		TokenIn:  addr1,
		TokenOut: addr2,
		Amount:   "100",
		Path:     []string{addr0, addr2},
	})
	require.ErrorIs(t, err, amm.ErrInvalidInput)
}

func TestQuoteNative(t *testing.T) {
	q := newTestQuoter(t)

	result, err := q.Quote(model.QuoteRequest{
		ChainID:  chains.BSCMainnet,
		TokenIn:  "native",
		TokenOut: addr0,
		Amount:   "100",
	})
	require.NoError(t, err)
	require.Equal(t, model.NativeToken, result.TokenIn)
	require.Len(t, result.Routes, 1)
	require.Equal(t, []string{wbnbAddress(t), addr0}, result.Routes[0].Path)
	require.Equal(t, "90", result.Routes[0].AmountOut)
}

func TestQuoteRejects(t *testing.T) {
	q := newTestQuoter(t)
	base := model.QuoteRequest{
		ChainID:  chains.BSCMainnet,
		TokenIn:  addr0,
		TokenOut: addr2,
		Amount:   "100",
	}

	cases := []struct {
		name   string
		mutate func(*model.QuoteRequest)
		want   error
	}{
		{"bad amount", func(r *model.QuoteRequest) { r.Amount = "1e3" }, ErrInvalidRequest},
		{"negative amount", func(r *model.QuoteRequest) { r.Amount = "-5" }, amm.ErrNegativeAmount},
		{"bad trade type", func(r *model.QuoteRequest) { r.TradeType = "sideways" }, ErrInvalidRequest},
		{"bad slippage", func(r *model.QuoteRequest) { r.Slippage = "lots" }, ErrInvalidRequest},
		{"negative slippage", func(r *model.QuoteRequest) { r.Slippage = "-1" }, amm.ErrInvalidSlippage},
		{"unknown token", func(r *model.QuoteRequest) { r.TokenOut = addr3 }, ErrUnknownToken},
		{"unknown chain", func(r *model.QuoteRequest) { r.ChainID = 1 }, chains.ErrUnknownChain},
		{"unknown pool", func(r *model.QuoteRequest) { r.Path = []string{addr0, addr3, addr2} }, ErrUnknownPool},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := q.Quote(req)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRunKeepsOrder(t *testing.T) {
	q := New(newTestBook(t), Config{MaxHops: 3, MaxResults: 3, Slippage: DefaultConfig().Slippage, Concurrency: 2}, nil)
	reqs := []model.QuoteRequest{
		{ID: "1", ChainID: chains.BSCMainnet, TokenIn: addr0, TokenOut: addr2, Amount: "100"},
		{ID: "2", ChainID: chains.BSCMainnet, TokenIn: addr0, TokenOut: addr3, Amount: "100"},
		{ID: "3", ChainID: chains.BSCMainnet, TokenIn: addr0, TokenOut: addr2, Amount: "100", TradeType: "exact_out"},
		{ID: "4", ChainID: chains.BSCMainnet, TokenIn: addr1, TokenOut: addr0, Amount: "100"},
	}

	outcomes, err := q.Run(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, outcomes, len(reqs))

	require.NoError(t, outcomes[0].Err)
	require.Equal(t, "1", outcomes[0].Result.ID)
	require.ErrorIs(t, outcomes[1].Err, ErrUnknownToken)
	require.NoError(t, outcomes[2].Err)
	require.Equal(t, "exact_out", outcomes[2].Result.TradeType)
	require.NoError(t, outcomes[3].Err)
	require.Equal(t, "4", outcomes[3].Result.ID)
}

func TestRunCancelled(t *testing.T) {
	q := newTestQuoter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.Run(ctx, []model.QuoteRequest{{ChainID: chains.BSCMainnet, TokenIn: addr0, TokenOut: addr2, Amount: "1"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseAddresses(t *testing.T) {
	addresses, err := ParseAddresses([]string{" " + addr0, "", addr1})
	require.NoError(t, err)
	require.Equal(t, []common.Address{common.HexToAddress(addr0), common.HexToAddress(addr1)}, addresses)

	_, err = ParseAddresses([]string{"0xzz"})
	require.Error(t, err)
}
