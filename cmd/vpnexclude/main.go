package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alpacax/vpnexclude/cmd/vpnexclude/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := command.RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
