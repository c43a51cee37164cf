// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

/*
Package services provides suture.Service wrappers for application components.

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer so suture can name it in log events.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe to Serve

Periodic tasks (PeriodicService):
  - Runs a function on a ticker until the context is canceled
  - NewCacheSweeper drops expired saju results
  - NewStoreGC reclaims badger value log space in the idempotency store
*/
package services
