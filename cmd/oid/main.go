package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lzww0608/oid/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewRoot(cli.OpenStore).ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
