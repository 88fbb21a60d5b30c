package quoter

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"swapScope/internal/amm"
	"swapScope/internal/fraction"
	"swapScope/internal/model"
)

const displayDigits = 6

type significant interface {
	ToSignificant(digits uint, mode fraction.Rounding) (string, error)
}

// Config holds request defaults and batch concurrency.
type Config struct {
	MaxHops     int
	MaxResults  int
	Slippage    fraction.Percent
	Concurrency int
}

// DefaultConfig returns three hops, three results, 0.5% slippage and four
// workers.
func DefaultConfig() Config {
	return Config{
		MaxHops:     3,
		MaxResults:  3,
		Slippage:    fraction.NewPercent(5, 1000),
		Concurrency: 4,
	}
}

// Quoter prices requests against a Book.
type Quoter struct {
	book   *Book
	cfg    Config
	logger *zap.Logger
}

func New(book *Book, cfg Config, logger *zap.Logger) *Quoter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Quoter{book: book, cfg: cfg, logger: logger}
}

// Outcome is the result of one request in a batch. Exactly one of Result
// and Err is meaningful.
type Outcome struct {
	Result model.QuoteResult
	Err    error
}

// Run quotes reqs concurrently and returns outcomes in request order. Only
// cancellation of ctx fails the batch; request failures land in the outcome.
func (q *Quoter) Run(ctx context.Context, reqs []model.QuoteRequest) ([]Outcome, error) {
	outcomes := make([]Outcome, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(q.cfg.Concurrency)
	for i := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := q.Quote(reqs[i])
			if err != nil {
				q.logger.Debug("quote failed",
					zap.String("id", reqs[i].ID),
					zap.Uint64("chain_id", reqs[i].ChainID),
					zap.Error(err),
				)
			}
			outcomes[i] = Outcome{Result: result, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Quote answers one request. With an explicit path the single trade along it
// is returned; otherwise the best trades over the chain's pools.
func (q *Quoter) Quote(req model.QuoteRequest) (model.QuoteResult, error) {
	tradeType, err := amm.ParseTradeType(req.TradeType)
	if err != nil {
		return model.QuoteResult{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	slippage := q.cfg.Slippage
	if req.Slippage != "" {
		slippage, err = fraction.ParsePercent(req.Slippage)
		if err != nil {
			return model.QuoteResult{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	if slippage.Sign() < 0 {
		return model.QuoteResult{}, fmt.Errorf("quote: %w", amm.ErrInvalidSlippage)
	}

	in, err := q.book.Currency(req.ChainID, req.TokenIn)
	if err != nil {
		return model.QuoteResult{}, fmt.Errorf("token in: %w", err)
	}
	out, err := q.book.Currency(req.ChainID, req.TokenOut)
	if err != nil {
		return model.QuoteResult{}, fmt.Errorf("token out: %w", err)
	}

	raw, ok := new(big.Int).SetString(req.Amount, 10)
	if !ok {
		return model.QuoteResult{}, fmt.Errorf("%w: amount %q", ErrInvalidRequest, req.Amount)
	}
	fixed := in
	if tradeType == amm.ExactOutput {
		fixed = out
	}
	amount, err := amm.NewAmount(fixed, raw)
	if err != nil {
		return model.QuoteResult{}, fmt.Errorf("amount: %w", err)
	}

	var trades []*amm.Trade
	if len(req.Path) > 0 {
		trade, err := q.tradeAlong(req, in, out, amount, tradeType)
		if err != nil {
			return model.QuoteResult{}, err
		}
		trades = []*amm.Trade{trade}
	} else {
		trades, err = q.search(req, in, out, amount, tradeType)
		if err != nil {
			return model.QuoteResult{}, err
		}
	}

	result := model.QuoteResult{
		ID:        req.ID,
		ChainID:   req.ChainID,
		TradeType: tradeType.String(),
		TokenIn:   currencyRef(in),
		TokenOut:  currencyRef(out),
		Amount:    raw.String(),
		Slippage:  slippage.String(),
		Routes:    make([]model.RouteQuote, 0, len(trades)),
	}
	for _, trade := range trades {
		route, err := routeQuote(trade, slippage)
		if err != nil {
			return model.QuoteResult{}, err
		}
		result.Routes = append(result.Routes, route)
	}
	return result, nil
}

func (q *Quoter) search(req model.QuoteRequest, in, out amm.Currency, amount amm.CurrencyAmount, tradeType amm.TradeType) ([]*amm.Trade, error) {
	opts := amm.SearchOptions{MaxNumResults: q.cfg.MaxResults, MaxHops: q.cfg.MaxHops}
	if req.MaxHops > 0 {
		opts.MaxHops = req.MaxHops
	}
	if req.MaxResults > 0 {
		opts.MaxNumResults = req.MaxResults
	}

	pools := q.book.Pools(req.ChainID)
	if tradeType == amm.ExactOutput {
		return amm.BestTradeExactOut(pools, in, amount, opts)
	}
	return amm.BestTradeExactIn(pools, amount, out, opts)
}

func (q *Quoter) tradeAlong(req model.QuoteRequest, in, out amm.Currency, amount amm.CurrencyAmount, tradeType amm.TradeType) (*amm.Trade, error) {
	path, err := ParseAddresses(req.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if len(path) < 2 {
		return nil, fmt.Errorf("%w: path needs at least two tokens", amm.ErrInvalidPath)
	}
	pools := make([]*amm.Pool, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		pool, err := q.book.Pair(req.ChainID, path[i-1], path[i])
		if err != nil {
			return nil, fmt.Errorf("path hop %d: %w", i, err)
		}
		pools = append(pools, pool)
	}
	route, err := amm.NewRoute(pools, in, out)
	if err != nil {
		return nil, err
	}
	return amm.NewTrade(route, amount, tradeType)
}

func routeQuote(trade *amm.Trade, slippage fraction.Percent) (model.RouteQuote, error) {
	route := trade.Route()
	quote := model.RouteQuote{
		AmountIn:    trade.InputAmount().Raw().String(),
		AmountOut:   trade.OutputAmount().Raw().String(),
		PriceImpact: trade.PriceImpact().String(),
	}
	for _, token := range route.Path() {
		quote.Path = append(quote.Path, token.Address().Hex())
	}
	for _, pool := range route.Pools() {
		quote.Pools = append(quote.Pools, pool.Address().Hex())
	}

	minOut, err := trade.MinimumAmountOut(slippage)
	if err != nil {
		return model.RouteQuote{}, err
	}
	maxIn, err := trade.MaximumAmountIn(slippage)
	if err != nil {
		return model.RouteQuote{}, err
	}
	quote.MinimumAmountOut = minOut.Raw().String()
	quote.MaximumAmountIn = maxIn.Raw().String()

	display := []struct {
		dst   *string
		value significant
	}{
		{&quote.AmountInFormatted, trade.InputAmount()},
		{&quote.AmountOutFormatted, trade.OutputAmount()},
		{&quote.ExecutionPrice, trade.ExecutionPrice()},
		{&quote.MidPrice, route.MidPrice()},
		{&quote.NextMidPrice, trade.NextMidPrice()},
	}
	for _, d := range display {
		value, err := d.value.ToSignificant(displayDigits, fraction.RoundHalfUp)
		if err != nil {
			return model.RouteQuote{}, fmt.Errorf("format route: %w", err)
		}
		*d.dst = value
	}
	return quote, nil
}

func currencyRef(c amm.Currency) string {
	if token, ok := c.(amm.Token); ok {
		return token.Address().Hex()
	}
	return model.NativeToken
}
