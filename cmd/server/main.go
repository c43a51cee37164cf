// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

// Command server runs the MBTI and Four Pillars (사주) analysis service.
//
// The server initializes components in this order:
//
//  1. Configuration: defaults, then config.yaml, then environment (koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Database: DuckDB for analyses, orders and statistics
//  4. Saju engine: lunar-go calendar oracle behind the pillar mapper
//  5. Payments (optional): gateway client, circuit breaker, badger
//     idempotency store and the order notifier
//  6. Admin (optional): JWT validation for /api/v1/admin/stats
//  7. Supervisor tree: HTTP server plus cache sweeper and store GC
//
// # Usage
//
//	server                      # same as "server serve"
//	server serve
//	server token alice --role viewer
//
// The token subcommand signs an admin API token with JWT_SECRET and
// prints it to stdout.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// for SERVER_SHUTDOWN_TIMEOUT, pending order notifications are flushed,
// and the stores are closed.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "server",
		Short: "MBTI and Four Pillars analysis service",
		Long:  "Serves saju calculation, MBTI scoring, combined analyses\nand paid consultation reports over a JSON HTTP API.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.Version = version
	root.AddCommand(newServeCmd())
	root.AddCommand(newTokenCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
