package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quatton/qrender/pkg/kv"
	"github.com/quatton/qrender/pkg/qapi"
	"github.com/quatton/qrender/pkg/qapi/config"
	"github.com/quatton/qrender/pkg/qapi/routes"
	"github.com/quatton/qrender/pkg/qrender"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the render agent HTTP API",
	Long: `Run a local HTTP agent that accepts render requests on POST /api/renders.

The agent is configured from the environment (a .env file is loaded in
development): HOST, PORT, RENDER_EXECUTABLE, VALKEY_ADDR, VALKEY_PASSWORD,
VALKEY_DB and LOCK_TTL. Without VALKEY_ADDR launch locks are kept in memory.

The agent has no authentication and listens on 127.0.0.1 unless HOST says
otherwise. RENDER_EXECUTABLE is required: it is the only program the agent
runs, for both external and internal renders. Requests may not name another
executable.`,
	RunE: serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := GetLogger(cmd)

	cfg, err := config.ValidateEnv()
	if err != nil {
		return err
	}
	cfg.Print(log.Printf)

	var locks kv.Store = kv.NewMemoryStore()
	if vk, ok := cfg.Valkey(); ok {
		store, err := kv.NewValkeyStore(ctx, vk)
		if err != nil {
			return fmt.Errorf("connecting to valkey at %s: %w", vk.Addr, err)
		}
		locks = store
	}
	defer locks.Close()

	launcher := qrender.NewLauncher(
		qrender.WithLogger(logger),
		qrender.WithLaunchLocks(locks, cfg.LockTimeout()),
		qrender.WithEmbeddedRenderer(qrender.ForegroundRenderer{
			Executable: cfg.RenderExecutable,
			Stdout:     os.Stderr,
			Stderr:     os.Stderr,
		}),
	)

	api := qapi.NewApi(Version)
	routes.RegisterAPI(api.Api, launcher, cfg.RenderExecutable)

	addr := cfg.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("🚀 Render agent starting on %s\n", addr)
	log.Printf("📚 OpenAPI docs: http://%s/docs\n", addr)
	log.Printf("📄 OpenAPI spec: http://%s/openapi.json\n", addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down render agent")
	// Detached renders keep running; only the HTTP listener stops.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
