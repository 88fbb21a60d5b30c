package amm

import "errors"

var (
	// ErrCurrencyMismatch is returned when two values must share a currency and do not.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrChainMismatch is returned when tokens, pools or configs span chains.
	ErrChainMismatch = errors.New("chain mismatch")
	// ErrIdenticalAddresses is returned for a pair of a token with itself.
	ErrIdenticalAddresses = errors.New("identical token addresses")
	// ErrNegativeAmount is returned when an amount or reserve would drop below zero.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrReserveOverflow is returned when a reserve no longer fits the pair's uint112 slot.
	ErrReserveOverflow = errors.New("reserve exceeds uint112")
	// ErrNotInPair is returned when a token is not one of the pool's two tokens.
	ErrNotInPair = errors.New("token not in pair")
	// ErrInsufficientReserves is returned when a pool cannot pay the requested output.
	ErrInsufficientReserves = errors.New("insufficient reserves")
	// ErrInsufficientInputAmount is returned when an input buys nothing.
	ErrInsufficientInputAmount = errors.New("insufficient input amount")
	// ErrInsufficientOutputAmount is returned when a zero output is requested.
	ErrInsufficientOutputAmount = errors.New("insufficient output amount")

	// ErrNoPool is returned for a route or trade without pools.
	ErrNoPool = errors.New("route has no pool")
	// ErrInvalidInput is returned when the input currency does not start the route.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidOutput is returned when the output currency does not end the route.
	ErrInvalidOutput = errors.New("invalid output")
	// ErrInvalidPath is returned when consecutive pools do not share a token.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidSlippage is returned for a negative slippage tolerance.
	ErrInvalidSlippage = errors.New("invalid slippage tolerance")
	// ErrEmptyPools is returned when a search is given no pools.
	ErrEmptyPools = errors.New("empty pools")
	// ErrZeroMaxHops is returned when a search allows no hops.
	ErrZeroMaxHops = errors.New("max hops must be positive")
	// ErrInvalidRecursion is returned when a search branch starts from the wrong amount.
	ErrInvalidRecursion = errors.New("invalid recursion")
)
