package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/billmal071/bookshelf/internal/cli"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		cli.RootCmd(),
		fang.WithVersion(cli.Version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
