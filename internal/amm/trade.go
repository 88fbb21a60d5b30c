package amm

import (
	"cmp"
	"fmt"
	"strings"

	"swapScope/internal/fraction"
)

// TradeType says which side of a trade is fixed.
type TradeType int

const (
	ExactInput TradeType = iota
	ExactOutput
)

func (t TradeType) String() string {
	switch t {
	case ExactInput:
		return "exact_in"
	case ExactOutput:
		return "exact_out"
	default:
		return fmt.Sprintf("trade_type(%d)", int(t))
	}
}

// ParseTradeType accepts "exact_in"/"exact_out" and their long forms.
func ParseTradeType(input string) (TradeType, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "exact_in", "exactin", "exact_input", "exactinput":
		return ExactInput, nil
	case "exact_out", "exactout", "exact_output", "exactoutput":
		return ExactOutput, nil
	default:
		return ExactInput, fmt.Errorf("unsupported trade type: %s", input)
	}
}

// Trade is an amount resolved through a route.
type Trade struct {
	route          *Route
	tradeType      TradeType
	inputAmount    CurrencyAmount
	outputAmount   CurrencyAmount
	executionPrice Price
	nextMidPrice   Price
	priceImpact    fraction.Percent
}

// NewTrade walks amount through route: forward for ExactInput, where amount is
// in the route's input currency, and backward for ExactOutput, where it is in
// the output currency.
func NewTrade(route *Route, amount CurrencyAmount, tradeType TradeType) (*Trade, error) {
	if route == nil {
		return nil, fmt.Errorf("new trade: %w", ErrNoPool)
	}
	if amount.currency == nil {
		return nil, fmt.Errorf("new trade: %w: nil currency", ErrCurrencyMismatch)
	}

	amounts := make([]TokenAmount, len(route.path))
	next := make([]*Pool, len(route.pools))

	switch tradeType {
	case ExactInput:
		if !amount.currency.Equal(route.input) {
			return nil, fmt.Errorf("new trade: %w: %s, route starts with %s", ErrInvalidInput, symbolOf(amount.currency), symbolOf(route.input))
		}
		amounts[0] = tokenAmount(amount, route.path[0])
		for i, pool := range route.pools {
			out, after, err := pool.GetOutputAmount(amounts[i])
			if err != nil {
				return nil, fmt.Errorf("new trade: hop %d: %w", i, err)
			}
			amounts[i+1] = out
			next[i] = after
		}
	case ExactOutput:
		if !amount.currency.Equal(route.output) {
			return nil, fmt.Errorf("new trade: %w: %s, route ends with %s", ErrInvalidOutput, symbolOf(amount.currency), symbolOf(route.output))
		}
		last := len(route.path) - 1
		amounts[last] = tokenAmount(amount, route.path[last])
		for i := last; i > 0; i-- {
			in, after, err := route.pools[i-1].GetInputAmount(amounts[i])
			if err != nil {
				return nil, fmt.Errorf("new trade: hop %d: %w", i-1, err)
			}
			amounts[i-1] = in
			next[i-1] = after
		}
	default:
		return nil, fmt.Errorf("new trade: unsupported trade type %d", int(tradeType))
	}

	t := &Trade{
		route:        route,
		tradeType:    tradeType,
		inputAmount:  withCurrency(amounts[0], route.input),
		outputAmount: withCurrency(amounts[len(amounts)-1], route.output),
	}

	var err error
	t.executionPrice, err = NewPrice(route.input, route.output, t.inputAmount.rawInt(), t.outputAmount.rawInt())
	if err != nil {
		return nil, fmt.Errorf("new trade: execution price: %w", err)
	}
	nextRoute, err := NewRoute(next, route.input, route.output)
	if err != nil {
		return nil, fmt.Errorf("new trade: next route: %w", err)
	}
	t.nextMidPrice = nextRoute.midPrice
	t.priceImpact, err = priceImpact(route.midPrice, t.inputAmount, t.outputAmount)
	if err != nil {
		return nil, fmt.Errorf("new trade: price impact: %w", err)
	}
	return t, nil
}

// priceImpact is (mid*in - out) / (mid*in).
func priceImpact(mid Price, in, out CurrencyAmount) (fraction.Percent, error) {
	quoted := mid.raw.MulInt(in.rawInt())
	impact, err := quoted.Sub(fraction.NewInt(out.rawInt())).Div(quoted)
	if err != nil {
		return fraction.Percent{}, err
	}
	return fraction.PercentFromRational(impact), nil
}

func (t *Trade) Route() *Route                 { return t.route }
func (t *Trade) TradeType() TradeType          { return t.tradeType }
func (t *Trade) InputAmount() CurrencyAmount   { return t.inputAmount }
func (t *Trade) OutputAmount() CurrencyAmount  { return t.outputAmount }
func (t *Trade) ExecutionPrice() Price         { return t.executionPrice }
func (t *Trade) NextMidPrice() Price           { return t.nextMidPrice }
func (t *Trade) PriceImpact() fraction.Percent { return t.priceImpact }

// MinimumAmountOut is the least output accepted under tolerance:
// floor(out / (1+tolerance)) for exact-input trades, out otherwise.
func (t *Trade) MinimumAmountOut(tolerance fraction.Percent) (CurrencyAmount, error) {
	if tolerance.Sign() < 0 {
		return CurrencyAmount{}, fmt.Errorf("minimum amount out: %w", ErrInvalidSlippage)
	}
	if t.tradeType == ExactOutput {
		return t.outputAmount, nil
	}
	bound, err := fraction.One().Add(tolerance.Rational()).Invert()
	if err != nil {
		return CurrencyAmount{}, fmt.Errorf("minimum amount out: %w", err)
	}
	return NewAmount(t.outputAmount.currency, bound.MulInt(t.outputAmount.rawInt()).Quotient())
}

// MaximumAmountIn is the most input spent under tolerance:
// ceil(in * (1+tolerance)) for exact-output trades, in otherwise.
func (t *Trade) MaximumAmountIn(tolerance fraction.Percent) (CurrencyAmount, error) {
	if tolerance.Sign() < 0 {
		return CurrencyAmount{}, fmt.Errorf("maximum amount in: %w", ErrInvalidSlippage)
	}
	if t.tradeType == ExactInput {
		return t.inputAmount, nil
	}
	return NewAmount(t.inputAmount.currency, tolerance.ApplyTo(t.inputAmount.rawInt()).Ceil())
}

// WorstExecutionPrice is the rate between MaximumAmountIn and MinimumAmountOut.
func (t *Trade) WorstExecutionPrice(tolerance fraction.Percent) (Price, error) {
	in, err := t.MaximumAmountIn(tolerance)
	if err != nil {
		return Price{}, err
	}
	out, err := t.MinimumAmountOut(tolerance)
	if err != nil {
		return Price{}, err
	}
	return NewPrice(in.currency, out.currency, in.rawInt(), out.rawInt())
}

func (t *Trade) String() string {
	return fmt.Sprintf("%s %s: %s -> %s", t.tradeType, t.route, t.inputAmount, t.outputAmount)
}

// compareTrades orders better trades first: more output, then less input,
// then lower price impact, then fewer hops.
func compareTrades(a, b *Trade) int {
	if c := a.outputAmount.Cmp(b.outputAmount); c != 0 {
		return -c
	}
	if c := a.inputAmount.Cmp(b.inputAmount); c != 0 {
		return c
	}
	if c := a.priceImpact.Cmp(b.priceImpact); c != 0 {
		return c
	}
	return cmp.Compare(len(a.route.path), len(b.route.path))
}
