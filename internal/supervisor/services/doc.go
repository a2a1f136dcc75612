// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package services provides suture.Service wrappers for Tastegraph components.

Each wrapper implements suture's Serve(ctx) error and fmt.Stringer:

HTTPServerService:
  - Runs *http.Server.ListenAndServe in a goroutine
  - On cancellation calls Shutdown with its own timeout
  - http.ErrServerClosed is treated as a clean stop

JanitorService:
  - Runs CleanupTask functions on a ticker
  - Used for handoff.Store.CleanupExpired and the similarity cache
  - Task failures are logged and retried on the next tick
*/
package services
