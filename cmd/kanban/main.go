// Command kanban is a terminal kanban board backed by a JSON document.
//
// Usage:
//
//	kanban [command] [flags]
//
// Without a command it opens the interactive board.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/riordanpawley/kanban/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}
