package main

import (
	"fmt"
	"os"

	"github.com/ashishpoonia369/EVs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "evs:", err)
		os.Exit(1)
	}
}
