package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/bethropolis/dirliner/internal/cli"
	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Execute(ctx)
	stop()

	if err != nil {
		fmt.Fprint(os.Stderr, color.RedString("\n💥 Error: %v\n\n", err))
		os.Exit(1)
	}
}
