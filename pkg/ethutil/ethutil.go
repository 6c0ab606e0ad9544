package ethutil

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/sha256"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// GeneratePrivateKey derives a deterministic wallet key from the platform
// secret and a per-owner nonce. The same (secret, nonce) pair always yields
// the same key, so the platform never stores private keys at rest.
func GeneratePrivateKey(secret, nonce []byte) (*ecdsa.PrivateKey, error) {
	seed := sha256.Sum256(append(secret, nonce...))
	randomSeed := bytes.Repeat(seed[:], 2)
	reader := bytes.NewReader(randomSeed)
	return ecdsa.GenerateKey(ethcrypto.S256(), reader)
}

func GeneratePublicKey(secret, nonce []byte) (common.Address, error) {
	walletPrivateKey, err := GeneratePrivateKey(secret, nonce)
	if err != nil {
		return common.Address{}, err
	}

	return ethcrypto.PubkeyToAddress(walletPrivateKey.PublicKey), nil
}

// SameAddress compares two hex addresses case-insensitively.
func SameAddress(a, b string) bool {
	return strings.EqualFold(
		common.HexToAddress(a).Hex(), common.HexToAddress(b).Hex())
}

// IsZeroAddress reports whether the address is empty or the zero address.
func IsZeroAddress(a string) bool {
	if a == "" {
		return true
	}

	return common.HexToAddress(a) == (common.Address{})
}
