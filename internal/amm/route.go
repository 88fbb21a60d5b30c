package amm

import (
	"fmt"
	"strings"
)

// Route is a validated chain of pools from an input to an output currency.
type Route struct {
	pools    []*Pool
	path     []Token
	input    Currency
	output   Currency
	midPrice Price
}

// NewRoute validates that pools connect input to output. A nil output
// accepts whatever token the path ends on. Native input or output is matched
// against the chain's wrapped token but kept as the route's visible currency.
func NewRoute(pools []*Pool, input, output Currency) (*Route, error) {
	if len(pools) == 0 {
		return nil, ErrNoPool
	}
	cfg := pools[0].cfg
	for _, pool := range pools[1:] {
		if pool.ChainID() != cfg.ChainID {
			return nil, fmt.Errorf("new route: %w: %d != %d", ErrChainMismatch, pool.ChainID(), cfg.ChainID)
		}
	}
	if _, err := WrappedNativeOf(cfg); err != nil {
		return nil, fmt.Errorf("new route: %w", err)
	}

	if input == nil {
		return nil, fmt.Errorf("new route: %w: nil input", ErrInvalidInput)
	}
	in, err := wrap(input, cfg)
	if err != nil {
		return nil, fmt.Errorf("new route: %w: %w", ErrInvalidInput, err)
	}
	if !pools[0].InvolvesToken(in) {
		return nil, fmt.Errorf("new route: %w: %s not in first pool", ErrInvalidInput, symbolOf(in))
	}

	var out Token
	if output != nil {
		if out, err = wrap(output, cfg); err != nil {
			return nil, fmt.Errorf("new route: %w: %w", ErrInvalidOutput, err)
		}
		if !pools[len(pools)-1].InvolvesToken(out) {
			return nil, fmt.Errorf("new route: %w: %s not in last pool", ErrInvalidOutput, symbolOf(out))
		}
	}

	path := make([]Token, 0, len(pools)+1)
	path = append(path, in)
	for i, pool := range pools {
		next, err := pool.OtherToken(path[i])
		if err != nil {
			return nil, fmt.Errorf("new route: %w: hop %d: %s not in %s", ErrInvalidPath, i, symbolOf(path[i]), pool.Address().Hex())
		}
		path = append(path, next)
	}

	end := path[len(path)-1]
	if output == nil {
		output = end
	} else if !end.Equal(out) {
		return nil, fmt.Errorf("new route: %w: path ends on %s", ErrInvalidOutput, symbolOf(end))
	}

	mid, err := PriceFromPools(pools, path)
	if err != nil {
		return nil, fmt.Errorf("new route: mid price: %w", err)
	}
	mid.base, mid.quote = input, output

	return &Route{
		pools:    append([]*Pool(nil), pools...),
		path:     path,
		input:    input,
		output:   output,
		midPrice: mid,
	}, nil
}

func (r *Route) Pools() []*Pool   { return append([]*Pool(nil), r.pools...) }
func (r *Route) Path() []Token    { return append([]Token(nil), r.path...) }
func (r *Route) Input() Currency  { return r.input }
func (r *Route) Output() Currency { return r.output }
func (r *Route) MidPrice() Price  { return r.midPrice }
func (r *Route) ChainID() uint64  { return r.pools[0].ChainID() }
func (r *Route) Hops() int        { return len(r.pools) }

func (r *Route) String() string {
	symbols := make([]string, len(r.path))
	for i, token := range r.path {
		symbols[i] = symbolOf(token)
	}
	return strings.Join(symbols, " -> ")
}
