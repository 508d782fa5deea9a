package main

import (
	"github.com/AzielCF/az-evo-relay/cmd"
)

func main() {
	cmd.Execute()
}
