// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

// Package auth guards the admin statistics API with HS256 bearer tokens.
//
// There is no login flow. Operators mint a token out of band with
//
//	server token alice --role viewer
//
// and send it as "Authorization: Bearer <token>". Tokens carry a role claim;
// RequireRole admits the named role and always admits RoleAdmin.
package auth
