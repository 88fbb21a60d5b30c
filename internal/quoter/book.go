package quoter

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"swapScope/internal/amm"
	"swapScope/internal/chains"
	"swapScope/internal/model"
)

type bookEntry struct {
	pool  *amm.Pool
	block uint64
}

type chainBook struct {
	order  []common.Address
	pools  map[common.Address]bookEntry
	tokens map[common.Address]amm.Token
}

// Book indexes pool snapshots by chain as amm pools. Pools are immutable, so
// readers share them freely.
type Book struct {
	registry *chains.Registry
	logger   *zap.Logger

	mu     sync.RWMutex
	chains map[uint64]*chainBook
}

// NewBook creates an empty book resolving chains through registry, or the
// default registry when nil.
func NewBook(registry *chains.Registry, logger *zap.Logger) *Book {
	if registry == nil {
		registry = chains.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Book{
		registry: registry,
		logger:   logger,
		chains:   make(map[uint64]*chainBook),
	}
}

// Load adds every snapshot, logging and skipping the ones that fail.
func (b *Book) Load(snapshots []model.PoolSnapshot) (loaded, skipped int) {
	for i, snapshot := range snapshots {
		if _, err := b.Add(snapshot); err != nil {
			skipped++
			b.logger.Warn("skip pool snapshot",
				zap.Int("index", i),
				zap.Uint64("chain_id", snapshot.ChainID),
				zap.String("address", snapshot.Address),
				zap.Error(err),
			)
			continue
		}
		loaded++
	}
	return loaded, skipped
}

// Add converts a snapshot into a pool and indexes it. A snapshot for a pair
// already in the book replaces it unless it is from an older block.
func (b *Book) Add(snapshot model.PoolSnapshot) (*amm.Pool, error) {
	cfg, err := b.registry.Lookup(snapshot.ChainID)
	if err != nil {
		return nil, fmt.Errorf("add pool: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	cb := b.chainLocked(snapshot.ChainID)
	token0, err := cb.tokenLocked(snapshot.ChainID, snapshot.Token0)
	if err != nil {
		return nil, fmt.Errorf("add pool: token0: %w", err)
	}
	token1, err := cb.tokenLocked(snapshot.ChainID, snapshot.Token1)
	if err != nil {
		return nil, fmt.Errorf("add pool: token1: %w", err)
	}
	reserve0, err := parseReserve(token0, snapshot.Reserve0)
	if err != nil {
		return nil, fmt.Errorf("add pool: reserve0: %w", err)
	}
	reserve1, err := parseReserve(token1, snapshot.Reserve1)
	if err != nil {
		return nil, fmt.Errorf("add pool: reserve1: %w", err)
	}

	pool, err := amm.NewPoolWithConfig(cfg, reserve0, reserve1)
	if err != nil {
		return nil, fmt.Errorf("add pool: %w", err)
	}

	if snapshot.Address != "" {
		declared, err := ParseAddress(snapshot.Address)
		if err != nil {
			return nil, fmt.Errorf("add pool: %w", err)
		}
		if declared != pool.Address() {
			b.logger.Warn("pool address mismatch",
				zap.Uint64("chain_id", snapshot.ChainID),
				zap.String("declared", declared.Hex()),
				zap.String("derived", pool.Address().Hex()),
			)
		}
	}

	existing, ok := cb.pools[pool.Address()]
	if ok && existing.block > snapshot.BlockNumber {
		b.logger.Debug("keep newer pool snapshot",
			zap.String("pool", pool.Address().Hex()),
			zap.Uint64("block", existing.block),
			zap.Uint64("stale_block", snapshot.BlockNumber),
		)
		return existing.pool, nil
	}
	if !ok {
		cb.order = append(cb.order, pool.Address())
	}
	cb.tokens[token0.Address()] = token0
	cb.tokens[token1.Address()] = token1
	cb.pools[pool.Address()] = bookEntry{pool: pool, block: snapshot.BlockNumber}

	b.logger.Debug("pool added",
		zap.String("pool", pool.String()),
		zap.String("address", pool.Address().Hex()),
		zap.Uint64("block", snapshot.BlockNumber),
	)
	return pool, nil
}

// Pools returns the chain's pools in insertion order.
func (b *Book) Pools(chainID uint64) []*amm.Pool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cb, ok := b.chains[chainID]
	if !ok {
		return nil
	}
	pools := make([]*amm.Pool, 0, len(cb.order))
	for _, address := range cb.order {
		pools = append(pools, cb.pools[address].pool)
	}
	return pools
}

// Token returns a token seen in any snapshot of chainID.
func (b *Book) Token(chainID uint64, address common.Address) (amm.Token, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cb, ok := b.chains[chainID]
	if !ok {
		return amm.Token{}, false
	}
	token, ok := cb.tokens[address]
	return token, ok
}

// Pair returns the pool holding tokens a and c.
func (b *Book) Pair(chainID uint64, a, c common.Address) (*amm.Pool, error) {
	cfg, err := b.registry.Lookup(chainID)
	if err != nil {
		return nil, err
	}
	address, err := cfg.PairAddress(a, c)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if cb, ok := b.chains[chainID]; ok {
		if entry, ok := cb.pools[address]; ok {
			return entry.pool, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrUnknownPool, a.Hex(), c.Hex())
}

// Currency resolves "native" or a token address on chainID.
func (b *Book) Currency(chainID uint64, ref string) (amm.Currency, error) {
	cfg, err := b.registry.Lookup(chainID)
	if err != nil {
		return nil, err
	}
	if isNative(ref) {
		return amm.NativeOf(cfg), nil
	}
	address, err := ParseAddress(ref)
	if err != nil {
		return nil, err
	}
	token, ok := b.Token(chainID, address)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownToken, address.Hex())
	}
	return token, nil
}

func (b *Book) chainLocked(chainID uint64) *chainBook {
	cb, ok := b.chains[chainID]
	if !ok {
		cb = &chainBook{
			pools:  make(map[common.Address]bookEntry),
			tokens: make(map[common.Address]amm.Token),
		}
		b.chains[chainID] = cb
	}
	return cb
}

// tokenLocked builds the token for meta. Decimals must agree with earlier
// snapshots of the same address; symbol and name come from the first one.
func (cb *chainBook) tokenLocked(chainID uint64, meta model.TokenMeta) (amm.Token, error) {
	address, err := ParseAddress(meta.Address)
	if err != nil {
		return amm.Token{}, err
	}
	if known, ok := cb.tokens[address]; ok {
		if known.Decimals() != meta.Decimals {
			return amm.Token{}, fmt.Errorf("%w: %s decimals %d, previously %d",
				ErrTokenConflict, address.Hex(), meta.Decimals, known.Decimals())
		}
		return known, nil
	}
	return amm.NewToken(chainID, address, meta.Decimals, meta.Symbol, meta.Name), nil
}

func parseReserve(token amm.Token, input string) (amm.TokenAmount, error) {
	raw, ok := new(big.Int).SetString(input, 10)
	if !ok {
		return amm.TokenAmount{}, fmt.Errorf("invalid reserve: %q", input)
	}
	return amm.NewAmount(token, raw)
}
