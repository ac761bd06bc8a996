package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/fx"
)

// run starts the application, blocks until a signal or fx shutdown and
// returns the process exit code.
func run(ctx context.Context, app *fx.App, stderr io.Writer) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "furnirent: start: %v\n", err)
		return 1
	}

	code := 0
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		code = sig.ExitCode
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(stderr, "furnirent: stop: %v\n", err)
		return 1
	}
	return code
}
