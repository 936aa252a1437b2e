package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ruleta-game/ruleta/internal/services/game"
	"github.com/ruleta-game/ruleta/internal/ws"
)

// Start runs the HTTP server until ctx is cancelled, then shuts it
// down gracefully.
func Start(ctx context.Context, addr string, gameService game.Service, hub *ws.Hub, logger *logrus.Logger) {
	handler := &handler{
		router:      mux.NewRouter(),
		gameService: gameService,
		hub:         hub,
		logger:      logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s := &http.Server{
		Addr:         addr,
		Handler:      handler,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}

	m := &middleware{
		logger: logger,
	}
	handler.initRouter(m)

	go func() {
		err := s.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Error starting server", err)
		}
	}()

	logger.Info("Server started on ", addr)

	waitForShutdown(ctx, s, logger)
	logger.Info("Exiting...")
}

func waitForShutdown(ctx context.Context, s *http.Server, logger *logrus.Logger) {
	<-ctx.Done()
	logger.Info("Trying graceful shutdown server")

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctxShutDown); err != nil {
		logger.Errorf("Server shutdown failed: %s", err)
		return
	}
	logger.Info("Server stopped")
}
