// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package supervisor runs the long-lived parts of the service under a suture v4
supervisor tree.

	tastegraph
	├── data-layer
	│   └── JanitorService ("janitor": handoff store, similarity cache)
	└── api-layer
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. The two layers count
failures independently, so a janitor stuck against an unreachable Redis does
not restart the HTTP server.

Supervisor events (start, stop, panic, backoff) are logged through
sutureslog, over the zerolog slog adapter from the logging package:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewJanitorService(interval, tasks...))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)

Cancelling ctx stops the tree; services have ShutdownTimeout to return.
UnstoppedServiceReport lists any that did not.
*/
package supervisor
