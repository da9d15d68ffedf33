package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	keysmitherrors "github.com/alexisbeaulieu97/keysmith/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil && !errors.Is(err, keysmitherrors.ErrCancelled) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(keysmitherrors.ExitCode(err))
}
