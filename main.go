package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/docvet/docvet/internal/adapters/inbound/cli"
	"github.com/docvet/docvet/internal/domain/gate"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, gate.ErrRegression) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
