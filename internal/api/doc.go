// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

/*
Package api is the HTTP surface of the service, routed with go-chi/chi.

Every response, success or failure, is a models.APIResponse envelope:

	{"status":"success","data":{...},"metadata":{"timestamp":"...","queryTimeMs":2}}
	{"status":"error","data":null,"metadata":{...},"error":{"code":"INVALID_DATE","message":"..."}}

Route groups and their rate limit tiers:

	/api/v1/health            health tier (probes)
	/api/v1/saju, /mbti       public tier (stateless calculation)
	/api/v1/analyses          write tier on POST
	/api/v1/orders, payments  payment tier
	/api/v1/reports           public tier
	/api/v1/admin/stats       JWT viewer role or above
	/metrics                  Prometheus exposition

Payment routes answer 503 SERVICE_UNAVAILABLE when payments are disabled in
configuration; admin routes do the same when no JWT secret is configured.
*/
package api
