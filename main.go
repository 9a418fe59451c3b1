package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/richardbizik/sendevents/internal/config"
	"github.com/richardbizik/sendevents/internal/handlers"
)

var srv *http.Server

func main() {
	conf, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     conf.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := conf.EventHub.Validate(); err != nil {
		// Requests are answered with 400 until the settings are provided.
		slog.Warn(err.Error())
	}

	srv = &http.Server{
		ReadHeaderTimeout: time.Second * 5,
		Addr:              fmt.Sprintf(":%s", conf.HTTP.Port),
		Handler:           handlers.NewRouter(conf, handlers.KafkaConnector()),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error(err.Error())
			os.Exit(1)
		}
	}()
	appStop := make(chan os.Signal, 2)
	slog.Info("Started server", "addr", srv.Addr, "eventHub", conf.EventHub.Name)
	handleSigterm(appStop)
}

func handleSigterm(appStop chan os.Signal) {
	signal.Notify(appStop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-appStop
	slog.Info("Received sigterm shutting down")
	cleanup()
}

func cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error(fmt.Sprintf("http server forced to shutdown: %v", err))
	}
}
