// cmd/doclog/main.go
//
// This is the entry point for the DocLog CLI.
//
// Flow:
// 1. Load the optional config file and resolve the document path
// 2. Open the session log
// 3. Run one session: load the store, run the TUI, persist the store
//
// An interrupt cancels the session context instead of killing the process,
// so the store is still written before we exit.

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
		fmt.Fprintf(os.Stderr, "doclog: %v\n", err)
		stop()
		os.Exit(1)
	}
}
