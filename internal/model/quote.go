package model

// NativeToken is the token_in/token_out value naming a chain's gas currency.
const NativeToken = "native"

// QuoteRequest asks for the best trades between two tokens, or for the
// trade along an explicit path of token addresses when Path is set.
type QuoteRequest struct {
	ID         string   `json:"id,omitempty"`
	ChainID    uint64   `json:"chain_id"`
	TokenIn    string   `json:"token_in"`
	TokenOut   string   `json:"token_out"`
	Amount     string   `json:"amount"`
	TradeType  string   `json:"trade_type"`
	Path       []string `json:"path,omitempty"`
	MaxHops    int      `json:"max_hops,omitempty"`
	MaxResults int      `json:"max_results,omitempty"`
	Slippage   string   `json:"slippage,omitempty"`
}

// QuoteResult is the answer to one QuoteRequest, best route first.
type QuoteResult struct {
	ID        string       `json:"id,omitempty"`
	ChainID   uint64       `json:"chain_id"`
	TradeType string       `json:"trade_type"`
	TokenIn   string       `json:"token_in"`
	TokenOut  string       `json:"token_out"`
	Amount    string       `json:"amount"`
	Slippage  string       `json:"slippage"`
	Routes    []RouteQuote `json:"routes"`
}

// RouteQuote describes one priced route. Amount fields are raw integers as
// decimal strings; *_formatted, price and impact fields are for display.
type RouteQuote struct {
	Path               []string `json:"path"`
	Pools              []string `json:"pools"`
	AmountIn           string   `json:"amount_in"`
	AmountOut          string   `json:"amount_out"`
	AmountInFormatted  string   `json:"amount_in_formatted"`
	AmountOutFormatted string   `json:"amount_out_formatted"`
	MinimumAmountOut   string   `json:"minimum_amount_out"`
	MaximumAmountIn    string   `json:"maximum_amount_in"`
	ExecutionPrice     string   `json:"execution_price"`
	MidPrice           string   `json:"mid_price"`
	NextMidPrice       string   `json:"next_mid_price"`
	PriceImpact        string   `json:"price_impact"`
}

// QuoteError records a request that could not be quoted.
type QuoteError struct {
	ID      string `json:"id,omitempty"`
	Line    int    `json:"line,omitempty"`
	ChainID uint64 `json:"chain_id,omitempty"`
	Error   string `json:"error"`
}
