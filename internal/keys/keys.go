package keys

import (
	"encoding/hex"
	"fmt"

	bip39 "github.com/tyler-smith/go-bip39"
)

// Size is the byte length of a raw private key.
const Size = 32

// HexLen is the length of the canonical textual representation.
const HexLen = Size * 2

// PrivateKey is raw key material. Value semantics keep it immutable
// once produced.
type PrivateKey [Size]byte

// Hex returns the canonical encoding: exactly 64 lowercase hex
// characters, zero-padded per byte.
func (k PrivateKey) Hex() string {
	return hex.EncodeToString(k[:])
}

// ParseHex is the inverse of Hex. A leading 0x prefix is rejected;
// the canonical form carries none.
func ParseHex(s string) (PrivateKey, error) {
	if len(s) != HexLen {
		return PrivateKey{}, fmt.Errorf("private key must be %d hex chars, got %d", HexLen, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("decode private key: %w", err)
	}
	var k PrivateKey
	copy(k[:], b)
	return k, nil
}

// Mnemonic renders the same 32 bytes of entropy as a 24-word BIP-39
// phrase. Lossless alternate encoding of the key material, not an HD
// wallet seed.
func (k PrivateKey) Mnemonic() (string, error) {
	return bip39.NewMnemonic(k[:])
}
