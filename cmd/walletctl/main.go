package main

import "github.com/DIMO-Network/transaction-signer/cmd/walletctl/cmd"

func main() {
	cmd.Execute()
}
