package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/trezcool/registrar/apps/di"
	"github.com/trezcool/registrar/core"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf := core.NewConfig()
	cli := newCommandLine(conf, di.NewLogger(conf, "REGISTRAR", os.Stderr), os.Stdout)

	if err := cli.run(ctx, os.Args[1:]); err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
		} else {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}
		stop()
		os.Exit(1)
	}
}
