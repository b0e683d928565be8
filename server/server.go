package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/nxtools/titleshelf/catalog"
	"github.com/nxtools/titleshelf/settings"
	titledb "github.com/nxtools/titleshelf/titledb"
	"github.com/rs/zerolog/log"
)

//Server renders the current catalog state as JSON for remote consumers

type Server struct {
	catalog  *catalog.Service
	titledb  *titledb.TitlesDB
	settings *settings.Settings
	httpSrv  *http.Server
}

func NewServer(service *catalog.Service, titledb *titledb.TitlesDB, settings *settings.Settings) *Server {
	return &Server{
		catalog:  service,
		titledb:  titledb,
		settings: settings,
	}
}

func (server *Server) Run() {
	log.Info().Int("port", server.settings.HTTPPort).Msg("Starting HTTP server")
	chain := alice.New(server.logRequests, server.recoverPanics).Then(server)
	server.httpSrv = &http.Server{
		Addr:        fmt.Sprintf(":%d", server.settings.HTTPPort),
		Handler:     chain,
		ReadTimeout: 30 * time.Second,
	}
	go func() {
		if err := server.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server exited")
		}
	}()
}

func (server *Server) Stop() {
	if server.httpSrv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.httpSrv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("HTTP shutdown was not clean")
	}
}

func (server *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(res, req)
		log.Debug().Str("path", req.URL.Path).Str("from", req.RemoteAddr).Dur("took", time.Since(start)).Msg("Request served")
	})
}

func (server *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", req.URL.Path).Msg("Handler panicked")
				http.Error(res, "Internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(res, req)
	})
}
