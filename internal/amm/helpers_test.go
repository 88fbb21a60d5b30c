package amm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"swapScope/internal/chains"
)

var (
	token0 = NewToken(chains.BSCMainnet, common.HexToAddress("0x0000000000000000000000000000000000000001"), 18, "t0", "Token 0")
	token1 = NewToken(chains.BSCMainnet, common.HexToAddress("0x0000000000000000000000000000000000000002"), 18, "t1", "Token 1")
	token2 = NewToken(chains.BSCMainnet, common.HexToAddress("0x0000000000000000000000000000000000000003"), 18, "t2", "Token 2")
	token3 = NewToken(chains.BSCMainnet, common.HexToAddress("0x0000000000000000000000000000000000000004"), 18, "t3", "Token 3")
)

func bscConfig(t *testing.T) *chains.Config {
	t.Helper()
	cfg, err := chains.Lookup(chains.BSCMainnet)
	require.NoError(t, err)
	return cfg
}

func wbnb(t *testing.T) Token {
	t.Helper()
	w, err := WrappedNativeOf(bscConfig(t))
	require.NoError(t, err)
	return w
}

func bnb(t *testing.T) Native {
	t.Helper()
	return NativeOf(bscConfig(t))
}

func tokenAmt(t *testing.T, token Token, raw int64) TokenAmount {
	t.Helper()
	a, err := NewAmountInt64(token, raw)
	require.NoError(t, err)
	return a
}

func currencyAmt(t *testing.T, c Currency, raw int64) CurrencyAmount {
	t.Helper()
	a, err := NewAmountInt64(c, raw)
	require.NoError(t, err)
	return a
}

func newPool(t *testing.T, a Token, reserveA int64, b Token, reserveB int64) *Pool {
	t.Helper()
	p, err := NewPool(tokenAmt(t, a, reserveA), tokenAmt(t, b, reserveB))
	require.NoError(t, err)
	return p
}

func rawOf[C Currency](a Amount[C]) string { return a.Raw().String() }

func pow2(n uint) *big.Int { return new(big.Int).Lsh(big.NewInt(1), n) }

// fixture is the pool set shared by the route, trade and search tests.
type fixture struct {
	p01, p02, p03, p12, p13 *Pool
	pW0                     *Pool
	empty01                 *Pool
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return fixture{
		p01:     newPool(t, token0, 1000, token1, 1000),
		p02:     newPool(t, token0, 1000, token2, 1100),
		p03:     newPool(t, token0, 1000, token3, 900),
		p12:     newPool(t, token1, 1200, token2, 1000),
		p13:     newPool(t, token1, 1200, token3, 1300),
		pW0:     newPool(t, wbnb(t), 1000, token0, 1000),
		empty01: newPool(t, token0, 0, token1, 0),
	}
}
