package cmd

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/DIMO-Network/transaction-signer/internal/chain"
	"github.com/DIMO-Network/transaction-signer/internal/wallet"
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a transaction offline and print it as JSON",
	Example: `  walletctl sign --key d96e...0aba --to 0x1122...3344 \
    --amount 1000000 --gas-price 2000000000 --nonce 17 --chain-id 333`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		to, _ := cmd.Flags().GetString("to")
		amountStr, _ := cmd.Flags().GetString("amount")
		gasPriceStr, _ := cmd.Flags().GetString("gas-price")
		gasLimit, _ := cmd.Flags().GetUint64("gas-limit")
		nonce, _ := cmd.Flags().GetUint64("nonce")
		chainID, _ := cmd.Flags().GetUint32("chain-id")
		msgVersion, _ := cmd.Flags().GetUint32("msg-version")
		code, _ := cmd.Flags().GetString("code")
		data, _ := cmd.Flags().GetString("data")

		amount, ok := new(big.Int).SetString(amountStr, 10)
		if !ok {
			return fmt.Errorf("malformed amount %q", amountStr)
		}

		gasPrice, ok := new(big.Int).SetString(gasPriceStr, 10)
		if !ok {
			return fmt.Errorf("malformed gas price %q", gasPriceStr)
		}

		account, err := wallet.NewAccount(key)
		if err != nil {
			return err
		}

		signed, err := account.SignTransaction(&chain.Transaction{
			Version:  chain.Version(chainID, msgVersion),
			Nonce:    nonce,
			ToAddr:   to,
			Amount:   amount,
			GasPrice: gasPrice,
			GasLimit: gasLimit,
			Code:     code,
			Data:     data,
		})
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(signed, "", "  ")
		if err != nil {
			return err
		}

		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signCmd)

	signCmd.Flags().String("key", "", "Hex private key of the signer")
	signCmd.Flags().String("to", "", "Recipient address")
	signCmd.Flags().String("amount", "0", "Amount in the chain's smallest unit")
	signCmd.Flags().String("gas-price", "2000000000", "Gas price in the chain's smallest unit")
	signCmd.Flags().Uint64("gas-limit", 50, "Gas limit in gas units")
	signCmd.Flags().Uint64("nonce", 0, "Transaction nonce")
	signCmd.Flags().Uint32("chain-id", 1, "Chain id of the target network")
	signCmd.Flags().Uint32("msg-version", 1, "Transaction message version")
	signCmd.Flags().String("code", "", "Contract code to deploy")
	signCmd.Flags().String("data", "", "JSON-encoded contract call data")

	signCmd.MarkFlagRequired("key")
	signCmd.MarkFlagRequired("to")
	signCmd.MarkFlagRequired("nonce")
}
