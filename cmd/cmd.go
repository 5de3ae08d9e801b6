// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd provides subcommands to the sawmill binary.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func installSignals() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// install notify
		signalChannel := make(chan os.Signal, 1)

		signal.Notify(
			signalChannel,
			syscall.SIGINT,
			syscall.SIGTERM,
		)
		select {
		case <-signalChannel:
		case <-ctx.Done():
		}
		cancel()
		signal.Reset()
	}()

	return ctx, cancel
}
