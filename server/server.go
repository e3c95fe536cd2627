// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/evidex/intent"
	"github.com/poiesic/evidex/search"
	"github.com/poiesic/evidex/vectorstore"
)

// Server exposes the retrieval pipeline over HTTP.
//
// Endpoints:
//
//	POST /evidence/search  run a retrieval call
//	GET  /healthz          liveness and collection size
//
// All endpoints except /healthz require a Bearer API key when keys are
// configured.
type Server struct {
	searcher *search.Searcher
	intents  *intent.Service
	store    vectorstore.Store
	apiKeys  map[string]struct{}
	logger   *slog.Logger
	httpSrv  *http.Server
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithAPIKeys sets the accepted API keys. With no keys configured every
// request is allowed, which is the development mode.
func WithAPIKeys(keys []string) Option {
	return func(s *Server) error {
		s.apiKeys = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			if k != "" {
				s.apiKeys[k] = struct{}{}
			}
		}
		return nil
	}
}

// WithIntentService attaches an intent service. When present, each search
// request also gets its intent classified and returned in the response
// metadata.
func WithIntentService(svc *intent.Service) Option {
	return func(s *Server) error {
		s.intents = svc
		return nil
	}
}

// WithStore attaches the vector store for the health endpoint's
// collection count.
func WithStore(store vectorstore.Store) Option {
	return func(s *Server) error {
		s.store = store
		return nil
	}
}

// New creates a server around a searcher.
func New(searcher *search.Searcher, opts ...Option) (*Server, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	s := &Server{
		searcher: searcher,
		logger:   slog.Default().With("component", "server"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Handler returns the routed and authenticated HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /evidence/search", s.handleSearch)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.requireAPIKey(mux)
}

// ListenAndServe starts serving on addr and blocks until Shutdown or
// failure.
func (s *Server) ListenAndServe(addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("listening", "addr", addr)
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
