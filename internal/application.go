package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/config"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/repository"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/usecase"
	redistransport "github.com/rocketscienceinc/tictactoe-lobby/transport/redis"
	"github.com/rocketscienceinc/tictactoe-lobby/transport/rest"
	"github.com/rocketscienceinc/tictactoe-lobby/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	hub := websocket.NewHub(logger)

	var broadcaster usecase.Broadcaster = hub

	if addr := conf.Redis.GetRedisAddr(); addr != "" {
		client, err := redistransport.NewClient(ctx, addr)
		if err != nil {
			return fmt.Errorf("could not connect to redis relay: %w", err)
		}

		defer func() {
			if err = client.Close(); err != nil {
				log.Error("could not close redis client", "error", err)
			}
		}()

		relay := redistransport.NewRelay(logger, client, hub)
		relay.Start(ctx)
		broadcaster = relay

		log.Info("Using Redis relay for cross-process fan-out", "addr", addr)
	} else {
		log.Info("Redis relay disabled, lobby events stay in-process")
	}

	lobbies := repository.NewLobbyRegistry()
	gameManager := usecase.NewGameManager(logger, lobbies, broadcaster, conf.BotMoveDelay())

	// run HTTP server for the static client
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort, conf.StaticDir); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager, hub)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
