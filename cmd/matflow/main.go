// Command matflow multiplies integer matrices on a pool of worker goroutines.
//
// Usage:
//
//	matflow multiply <left-file> <right-file> <threads>
//	matflow random <r1> <c1> <r2> <c2> <threads> [--seed N]
//	matflow bench <r1> <c1> <r2> <c2> <threads> [--schedule "@every 1s"] [--runs N] [--metrics-addr :9090]
//
// Matrix files hold one row per line with comma-separated integers.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

var version = "0.1.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("matflow: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
