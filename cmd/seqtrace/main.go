// Command seqtrace ingests genomes with sample metadata, infers spreads between
// locations and reports the resulting transmission network.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "seqtrace:", err)
		os.Exit(1)
	}
}
