package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DIMO-Network/transaction-signer/internal/keys"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new private key with its public key and address",
	Example: `  walletctl generate
  walletctl generate --count 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetUint32("count")
		for i := uint32(0); i < count; i++ {
			if i > 0 {
				fmt.Println()
			}
			if err := printCredentials(keys.Generate()); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Uint32("count", 1, "Number of keys to generate")
}
