package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DIMO-Network/transaction-signer/internal/address"
	"github.com/DIMO-Network/transaction-signer/internal/keys"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <private-key>",
	Short: "Print the public key and address for a private key",
	Example: `  walletctl inspect d96e9eb5b782a80ea153c937fa83e5948485fbfc8b7e7c069d7b914dbc350aba
  walletctl inspect --mnemonic "abandon ... about" --index 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mnemonic, _ := cmd.Flags().GetString("mnemonic")
		if mnemonic != "" {
			index, _ := cmd.Flags().GetUint32("index")
			key, err := keys.FromMnemonic(mnemonic, index)
			if err != nil {
				return err
			}
			return printCredentials(key)
		}

		if len(args) != 1 {
			return fmt.Errorf("expected a private key argument or --mnemonic")
		}
		return printCredentials(args[0])
	},
}

func printCredentials(privateKey string) error {
	normalized, err := keys.Normalize(privateKey)
	if err != nil {
		return err
	}

	publicKey, err := keys.PublicKeyFromPrivate(normalized)
	if err != nil {
		return err
	}

	addr, err := address.FromPublicKey(publicKey)
	if err != nil {
		return err
	}

	fmt.Printf("Private key: %s\n", normalized)
	fmt.Printf("Public key:  %s\n", publicKey)
	fmt.Printf("Address:     %s\n", addr)
	return nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().String("mnemonic", "", "Derive the key from a BIP-39 mnemonic instead")
	inspectCmd.Flags().Uint32("index", 0, "Account index for mnemonic derivation")
}
