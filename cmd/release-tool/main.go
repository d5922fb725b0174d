package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BenjaminKobjolke/release-tool/internal/cmd"
	"github.com/BenjaminKobjolke/release-tool/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	if err == nil {
		return
	}

	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "operation cancelled")
		os.Exit(errors.ExitInterrupted)
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(errors.ExitCode(err))
}
