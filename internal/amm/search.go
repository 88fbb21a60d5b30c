package amm

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
)

// SearchOptions bounds a best-trade search.
type SearchOptions struct {
	MaxNumResults int
	MaxHops       int
}

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{MaxNumResults: 3, MaxHops: 3}
}

// search holds the per-call constants of one best-trade search. Everything
// that varies per branch is passed by value.
type search struct {
	opts      SearchOptions
	original  CurrencyAmount
	wrapped   TokenAmount
	input     Currency
	output    Currency
	endpoint  Token
	tradeType TradeType
}

// BestTradeExactIn returns up to opts.MaxNumResults trades spending amountIn
// for currencyOut, best first, using each pool at most once per route and at
// most opts.MaxHops pools. Pools that cannot take the trade are skipped.
func BestTradeExactIn(pools []*Pool, amountIn CurrencyAmount, currencyOut Currency, opts SearchOptions) ([]*Trade, error) {
	if err := validateSearch(pools, opts); err != nil {
		return nil, fmt.Errorf("best trade exact in: %w", err)
	}
	if amountIn.currency == nil || currencyOut == nil {
		return nil, fmt.Errorf("best trade exact in: %w: nil currency", ErrCurrencyMismatch)
	}
	cfg := pools[0].cfg
	in, err := wrap(amountIn.currency, cfg)
	if err != nil {
		return nil, fmt.Errorf("best trade exact in: %w: %w", ErrInvalidInput, err)
	}
	out, err := wrap(currencyOut, cfg)
	if err != nil {
		return nil, fmt.Errorf("best trade exact in: %w: %w", ErrInvalidOutput, err)
	}
	if opts.MaxNumResults <= 0 {
		return []*Trade{}, nil
	}

	s := &search{
		opts:      opts,
		original:  amountIn,
		wrapped:   tokenAmount(amountIn, in),
		input:     amountIn.currency,
		output:    currencyOut,
		endpoint:  out,
		tradeType: ExactInput,
	}
	best, err := s.exactIn(distinct(pools), s.wrapped, nil, opts.MaxHops, []*Trade{})
	if err != nil {
		return nil, fmt.Errorf("best trade exact in: %w", err)
	}
	return best, nil
}

// BestTradeExactOut mirrors BestTradeExactIn: it finds the cheapest ways to
// buy amountOut with currencyIn, walking pools backward from the output.
func BestTradeExactOut(pools []*Pool, currencyIn Currency, amountOut CurrencyAmount, opts SearchOptions) ([]*Trade, error) {
	if err := validateSearch(pools, opts); err != nil {
		return nil, fmt.Errorf("best trade exact out: %w", err)
	}
	if amountOut.currency == nil || currencyIn == nil {
		return nil, fmt.Errorf("best trade exact out: %w: nil currency", ErrCurrencyMismatch)
	}
	cfg := pools[0].cfg
	in, err := wrap(currencyIn, cfg)
	if err != nil {
		return nil, fmt.Errorf("best trade exact out: %w: %w", ErrInvalidInput, err)
	}
	out, err := wrap(amountOut.currency, cfg)
	if err != nil {
		return nil, fmt.Errorf("best trade exact out: %w: %w", ErrInvalidOutput, err)
	}
	if opts.MaxNumResults <= 0 {
		return []*Trade{}, nil
	}

	s := &search{
		opts:      opts,
		original:  amountOut,
		wrapped:   tokenAmount(amountOut, out),
		input:     currencyIn,
		output:    amountOut.currency,
		endpoint:  in,
		tradeType: ExactOutput,
	}
	best, err := s.exactOut(distinct(pools), s.wrapped, nil, opts.MaxHops, []*Trade{})
	if err != nil {
		return nil, fmt.Errorf("best trade exact out: %w", err)
	}
	return best, nil
}

func validateSearch(pools []*Pool, opts SearchOptions) error {
	if len(pools) == 0 {
		return ErrEmptyPools
	}
	if opts.MaxHops <= 0 {
		return ErrZeroMaxHops
	}
	return nil
}

// checkBranch enforces that only the outermost call may carry an empty path,
// and that it does so with the caller's amount.
func (s *search) checkBranch(pools []*Pool, amount TokenAmount, current []*Pool, maxHops int) error {
	if len(pools) == 0 {
		return ErrEmptyPools
	}
	if maxHops <= 0 {
		return ErrZeroMaxHops
	}
	if len(current) == 0 && !(amount.currency.Equal(s.wrapped.currency) && amount.EqualTo(s.wrapped)) {
		return ErrInvalidRecursion
	}
	return nil
}

func (s *search) exactIn(pools []*Pool, amountIn TokenAmount, current []*Pool, maxHops int, best []*Trade) ([]*Trade, error) {
	if err := s.checkBranch(pools, amountIn, current, maxHops); err != nil {
		return nil, err
	}
	for i, pool := range pools {
		if !pool.InvolvesToken(amountIn.currency) || !pool.HasLiquidity() {
			continue
		}
		amountOut, _, err := pool.GetOutputAmount(amountIn)
		if err != nil {
			if errors.Is(err, ErrInsufficientInputAmount) || errors.Is(err, ErrReserveOverflow) {
				continue
			}
			return nil, err
		}

		path := extend(current, pool, false)
		if amountOut.currency.Equal(s.endpoint) {
			trade, err := s.trade(path)
			if err != nil {
				return nil, err
			}
			best = insertTrade(best, trade, s.opts.MaxNumResults)
		} else if maxHops > 1 && len(pools) > 1 {
			best, err = s.exactIn(without(pools, i), amountOut, path, maxHops-1, best)
			if err != nil {
				return nil, err
			}
		}
	}
	return best, nil
}

func (s *search) exactOut(pools []*Pool, amountOut TokenAmount, current []*Pool, maxHops int, best []*Trade) ([]*Trade, error) {
	if err := s.checkBranch(pools, amountOut, current, maxHops); err != nil {
		return nil, err
	}
	for i, pool := range pools {
		if !pool.InvolvesToken(amountOut.currency) || !pool.HasLiquidity() {
			continue
		}
		amountIn, _, err := pool.GetInputAmount(amountOut)
		if err != nil {
			if errors.Is(err, ErrInsufficientReserves) || errors.Is(err, ErrInsufficientOutputAmount) ||
				errors.Is(err, ErrReserveOverflow) {
				continue
			}
			return nil, err
		}

		path := extend(current, pool, true)
		if amountIn.currency.Equal(s.endpoint) {
			trade, err := s.trade(path)
			if err != nil {
				return nil, err
			}
			best = insertTrade(best, trade, s.opts.MaxNumResults)
		} else if maxHops > 1 && len(pools) > 1 {
			best, err = s.exactOut(without(pools, i), amountIn, path, maxHops-1, best)
			if err != nil {
				return nil, err
			}
		}
	}
	return best, nil
}

func (s *search) trade(path []*Pool) (*Trade, error) {
	route, err := NewRoute(path, s.input, s.output)
	if err != nil {
		return nil, err
	}
	return NewTrade(route, s.original, s.tradeType)
}

// insertTrade returns a new list with t placed by rank and the tail beyond
// limit dropped. best is not modified.
func insertTrade(best []*Trade, t *Trade, limit int) []*Trade {
	i, _ := slices.BinarySearchFunc(best, t, compareTrades)
	next := slices.Insert(slices.Clone(best), i, t)
	if len(next) > limit {
		next = next[:limit]
	}
	return next
}

// extend returns a fresh path with pool appended, or prepended when walking
// backward.
func extend(current []*Pool, pool *Pool, prepend bool) []*Pool {
	path := make([]*Pool, 0, len(current)+1)
	if prepend {
		path = append(path, pool)
		return append(path, current...)
	}
	path = append(path, current...)
	return append(path, pool)
}

// without returns a copy of pools minus the one at index i.
func without(pools []*Pool, i int) []*Pool {
	out := make([]*Pool, 0, len(pools)-1)
	out = append(out, pools[:i]...)
	return append(out, pools[i+1:]...)
}

// distinct drops repeated pools, keeping the first snapshot of each pair
// address, so no route can cross the same pair twice.
func distinct(pools []*Pool) []*Pool {
	seen := make(map[common.Address]struct{}, len(pools))
	out := make([]*Pool, 0, len(pools))
	for _, pool := range pools {
		if _, ok := seen[pool.address]; ok {
			continue
		}
		seen[pool.address] = struct{}{}
		out = append(out, pool)
	}
	return out
}
