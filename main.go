// main is the entry point for the cvsspop CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/cvsspop/cmd"
	"github.com/huangsam/cvsspop/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
