/*
 *     Copyright 2023 The TopChef Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"

	"github.com/TopChef/TopChef-sub000/broker/cache"
	"github.com/TopChef/TopChef-sub000/broker/config"
	"github.com/TopChef/TopChef-sub000/broker/database"
	"github.com/TopChef/TopChef-sub000/broker/docstore"
	"github.com/TopChef/TopChef-sub000/broker/router"
	"github.com/TopChef/TopChef-sub000/broker/service"
	logger "github.com/TopChef/TopChef-sub000/internal/tclog"
)

type Server struct {
	cfg        *config.Config
	httpServer *http.Server
}

// New wires the broker: relational store, document store, cache, core service
// and the REST router. All handles are constructed here and passed down; no
// package-level state.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}

	var rdb redis.UniversalClient
	var docs docstore.Store
	switch cfg.DocStore.Type {
	case config.DocStoreTypeRedis:
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return nil, err
		}
		docs = docstore.NewRedis(rdb)
	case config.DocStoreTypeMemory:
		docs = docstore.NewMemory()
	default:
		return nil, fmt.Errorf("unknown docStore type %q", cfg.DocStore.Type)
	}

	// The service cache rides on the same redis the document store uses.
	// Without redis it degrades to the local TinyLFU tier.
	svc := service.New(
		service.WithDatabase(db),
		service.WithDocStore(docs),
		service.WithCache(cache.New(cfg, rdb)),
	)

	r, err := router.Init(cfg, svc)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: r,
		},
	}, nil
}

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("broker listening on %s", s.cfg.Server.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Infof("received signal %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
