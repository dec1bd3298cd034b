package keys

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/friendsofgo/errors"
	"github.com/tyler-smith/go-bip39"
)

// coinType is the registered BIP-44 coin type for the chain.
const coinType = 313

// FromMnemonic derives the private key at m/44'/313'/0'/0/index from a
// BIP-39 mnemonic, returned in canonical hex form. The mnemonic's checksum
// is verified.
func FromMnemonic(mnemonic string, index uint32) (string, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return "", errors.Wrap(err, "invalid mnemonic")
	}

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive master key")
	}

	for _, step := range []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + coinType,
		hdkeychain.HardenedKeyStart,
		0,
		index,
	} {
		key, err = key.Derive(step)
		if err != nil {
			return "", errors.Wrap(err, "failed to derive child key")
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(priv.Serialize()), nil
}
