package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ui_automation/presentation/terminal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := terminal.NewApp(os.Stdout)
	if err := app.RootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
