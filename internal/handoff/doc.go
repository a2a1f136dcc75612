// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package handoff holds listener credentials for a short time under a random,
// single-use code so a browser login can pass a credential to another client
// without putting it in a URL.
//
// Three backends implement Store:
//
//   - memory: a TTL LRU, lost on restart
//   - badger: BadgerDB with native entry TTLs, durable across restarts
//   - redis: SET with EX and an atomic GETDEL, shared between replicas
//
// Each record carries its own expiry. Backends keep it for a grace period past
// that expiry so Redeem can tell an expired code (ErrExpired) from one that
// never existed or was already used (ErrNotFound).
package handoff
