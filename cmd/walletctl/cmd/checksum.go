package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DIMO-Network/transaction-signer/internal/address"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum <address>",
	Short: "Print the checksummed form of an address",
	Example: `  walletctl checksum 11223344556677889900aabbccddeeff11223344
  walletctl checksum 0x11223344556677889900AabbccdDeefF11223344`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checksummed, err := address.ToChecksum(args[0])
		if err != nil {
			return err
		}

		valid, err := address.IsValidChecksum(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Checksummed:    %s\n", checksummed)
		fmt.Printf("Input matches:  %v\n", valid)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checksumCmd)
}
