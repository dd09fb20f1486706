// Command formstate inspects and edits JSON or YAML documents through the
// form state engine: it guesses field configuration, validates data against
// a configuration or an OpenAPI schema, runs interactive edit sessions and
// watches data files for upstream changes.
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

	root := newRootCmd(&app{})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
