// routeserver is a thin HTTP host wrapping Router.Route behind a single
// endpoint, demonstrating the host-application interface from spec §1
// without implementing turn-by-turn guidance or re-routing. Grounded on
// the teacher's pkg/http/server.go errgroup bring-up and
// pkg/http/router/router.go's httprouter + alice + cors wiring, stripped
// of the websocket map-matching proxy and swagger doc surface this
// engine has no use for.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tileroute/tileroute/pkg/rconfig"
	"github.com/tileroute/tileroute/pkg/rlog"
	"github.com/tileroute/tileroute/pkg/router"
	"github.com/tileroute/tileroute/pkg/tilestore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "routeserver:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := rconfig.Load(os.Getenv("NAVCORE_CONFIG_DIR"), "routeserver")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := rlog.New()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	store, err := tilestore.Open(cfg.ContainerPath, cfg.CacheCapacity, log)
	if err != nil {
		return fmt.Errorf("open container: %w", err)
	}
	defer store.Close()

	r := router.New(store, uint8(cfg.Zoom), cfg.FrameMin, cfg.FrameMax, cfg.CarVRefMps, cfg.FootVRefMps, router.WithLogger(log))

	api := newRouteAPI(r, log)

	mux := httprouter.New()
	mux.GET("/v1/route", api.computeRoute)

	chain := alice.New(
		cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		}).Handler,
	).Then(mux)

	addr := fmt.Sprintf(":%d", httpPort())
	srv := &http.Server{Addr: addr, Handler: chain}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("routeserver: listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func httpPort() int {
	return 8080
}
