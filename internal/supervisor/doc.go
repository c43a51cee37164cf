// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

/*
Package supervisor runs the long-lived parts of the service under a suture v4
supervisor tree.

# Overview

	RootSupervisor ("mbtisaju")
	├── APISupervisor ("api-layer")
	│   └── HTTPServerService
	└── MaintenanceSupervisor ("maintenance-layer")
	    ├── PeriodicService "cache-sweeper" (if CACHE_ENABLED)
	    └── PeriodicService "idempotency-gc" (if PAYMENT_ENABLED)

Crashed services are restarted with suture's failure threshold, decay and
backoff, all configurable through the supervisor section of the config.
Supervisor events are logged through sutureslog into the zerolog-backed
slog handler from the logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfigFrom(cfg))
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(services.NewCacheSweeper(analyses, time.Minute))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

See the services subpackage for the service wrappers.
*/
package supervisor
