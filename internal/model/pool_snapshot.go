package model

import (
	"encoding/json"
)

// PoolSnapshot is the reserve state of one pair at a point in time.
// Reserves are raw smallest-unit integers encoded as decimal strings.
type PoolSnapshot struct {
	ChainID     uint64    `json:"chain_id"`
	Address     string    `json:"address,omitempty"`
	Token0      TokenMeta `json:"token0"`
	Token1      TokenMeta `json:"token1"`
	Reserve0    string    `json:"reserve0"`
	Reserve1    string    `json:"reserve1"`
	BlockNumber uint64    `json:"block_number,omitempty"`
}

// UnmarshalJSON accepts reserves as JSON strings or bare numbers.
func (ps *PoolSnapshot) UnmarshalJSON(data []byte) error {
	type Alias PoolSnapshot
	aux := struct {
		*Alias
		Reserve0 json.Number `json:"reserve0"`
		Reserve1 json.Number `json:"reserve1"`
	}{Alias: (*Alias)(ps)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ps.Reserve0 = aux.Reserve0.String()
	ps.Reserve1 = aux.Reserve1.String()
	return nil
}
