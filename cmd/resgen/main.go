// Command resgen generates resource group aliases, records and extractors.
//
//	//go:generate go run github.com/syssam/resgen/cmd/resgen generate
package main

import (
	"os"

	"github.com/syssam/resgen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
