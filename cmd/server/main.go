package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/config"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/serverapp"
)

func main() {
	cfgPath := os.Getenv("GROWTH_TRACKER_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	srv, err := serverapp.New(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler,
	}

	go func() {
		log.Printf("listening on http://localhost%s", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
	if err := srv.Close(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
