package derive

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"KeyForge/internal/keys"
)

// btcMainnetVersion is the Base58Check version byte for P2PKH mainnet.
const btcMainnetVersion = 0x00

// Addresses are the blockchain identifiers derived from one private key.
type Addresses struct {
	BTC string `json:"btc_address"`
	ETH string `json:"eth_address"`
}

// FromKey derives mainnet BTC and ETH addresses from raw key material.
// BTC uses the uncompressed public key: HASH160 then Base58Check with
// the 0x00 version byte. ETH is Keccak-256 of the 64-byte public key,
// last 20 bytes. Keys whose scalar falls outside the secp256k1 order
// fail with an error instead of producing a bogus identifier.
func FromKey(k keys.PrivateKey) (Addresses, error) {
	priv, err := gethcrypto.ToECDSA(k[:])
	if err != nil {
		return Addresses{}, fmt.Errorf("key not a valid secp256k1 scalar: %w", err)
	}

	// 0x04 || X || Y, the uncompressed form the classic P2PKH flow hashes.
	pub := gethcrypto.FromECDSAPub(&priv.PublicKey)

	return Addresses{
		BTC: base58.CheckEncode(btcutil.Hash160(pub), btcMainnetVersion),
		ETH: gethcrypto.PubkeyToAddress(priv.PublicKey).Hex(),
	}, nil
}

// FromHex derives addresses from the canonical 64-char hex encoding.
func FromHex(s string) (Addresses, error) {
	k, err := keys.ParseHex(s)
	if err != nil {
		return Addresses{}, err
	}
	return FromKey(k)
}

// KeystoreJSON encrypts one key into go-ethereum keystore JSON with the
// standard scrypt parameters.
func KeystoreJSON(k keys.PrivateKey, password string) ([]byte, error) {
	priv, err := gethcrypto.ToECDSA(k[:])
	if err != nil {
		return nil, fmt.Errorf("key not a valid secp256k1 scalar: %w", err)
	}
	key := &keystore.Key{
		Address:    gethcrypto.PubkeyToAddress(priv.PublicKey),
		PrivateKey: priv,
	}
	return keystore.EncryptKey(key, password, keystore.StandardScryptN, keystore.StandardScryptP)
}
