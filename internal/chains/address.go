package chains

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SortAddresses returns a and b in ascending byte order.
func SortAddresses(a, b common.Address) (common.Address, common.Address) {
	if bytes.Compare(a.Bytes(), b.Bytes()) < 0 {
		return a, b
	}
	return b, a
}

// PairAddress derives the CREATE2 address of the pair for two tokens:
// keccak256(0xff ++ factory ++ keccak256(token0 ++ token1) ++ initCodeHash)[12:].
func (c *Config) PairAddress(a, b common.Address) (common.Address, error) {
	if a == b {
		return common.Address{}, fmt.Errorf("pair address: identical tokens %s", a.Hex())
	}
	token0, token1 := SortAddresses(a, b)
	salt := crypto.Keccak256(token0.Bytes(), token1.Bytes())
	hash := crypto.Keccak256(
		[]byte{0xff},
		c.FactoryAddress.Bytes(),
		salt,
		c.InitCodeHash.Bytes(),
	)
	return common.BytesToAddress(hash[12:]), nil
}
