package main

import "github/chapool/magic-wallet/cmd"

func main() {
	cmd.Execute()
}
