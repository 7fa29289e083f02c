// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

/*
Package supervisor runs the long-lived parts of CommutePulse under a suture v4
supervisor tree.

	RootSupervisor ("commutepulse")
	├── DataSupervisor ("data-layer")
	│   └── CatalogMonitor
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing catalog monitor restarts on its own without touching the HTTP
server. Supervisor events are logged through sutureslog into the zerolog
bridge from the logging package.

Usage in main:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddDataService(services.NewCatalogMonitor(db, time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped with error")
	}
*/
package supervisor
