package main

import (
	"context"
	"fmt"
	"os"

	"github.com/trezcool/registrar/apps/di"
	echoapi "github.com/trezcool/registrar/apps/portal/echo"
	"github.com/trezcool/registrar/core"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()
	logger := di.NewLogger(conf, "PORTAL", os.Stdout)

	deps, err := di.NewContainer(context.Background(), conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up dependencies: %v", err), err)
		return
	}
	defer func() {
		if err = deps.Close(); err != nil {
			logger.Error("closing dependencies", err)
		}
	}()

	// =========================================================================
	// Start Portal

	logger.Info(fmt.Sprintf("Portal initializing : version %q, backend %q", conf.Build, conf.API.Endpoint))
	defer logger.Info("Portal stopped")

	server := echoapi.NewServer(deps)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Portal.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
