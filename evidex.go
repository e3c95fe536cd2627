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


package evidex

import (
	"log/slog"

	"github.com/poiesic/evidex/ai"
	"github.com/poiesic/evidex/ai/openai"
	"github.com/poiesic/evidex/ingestion"
	"github.com/poiesic/evidex/intent"
	"github.com/poiesic/evidex/search"
	"github.com/poiesic/evidex/vectorstore"
	"github.com/poiesic/evidex/vectorstore/local"
)

// Service is the composition root: it owns the vector store and the AI
// provider, and hands out pipeline components built on them. One Service
// is constructed at process start and shared across all requests; there
// is no other process-wide state.
type Service struct {
	store    vectorstore.Store
	provider ai.AIProvider
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
	store    vectorstore.Store
	provider ai.AIProvider
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithStore uses the given vector store instead of opening an embedded
// one at the storage path. Use this to back the service with a Qdrant
// collection.
func WithStore(store vectorstore.Store) ServiceOption {
	return func(o *serviceOptions) {
		o.store = store
	}
}

// WithProvider uses the given AI provider instead of constructing one
// from the AI configuration.
func WithProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// NewService creates the service context. With no WithStore option, an
// embedded store is opened at filePath.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store := options.store
	if store == nil {
		embedded, err := local.Open(filePath, false)
		if err != nil {
			return nil, err
		}
		store = embedded
	}

	provider := options.provider
	if provider == nil {
		created, err := openai.NewProvider(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
		provider = created
	}

	return &Service{
		store:    store,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing vector store", "err", err)
		return err
	}
	return nil
}

func (s *Service) Store() vectorstore.Store {
	return s.store
}

func (s *Service) Provider() ai.AIProvider {
	return s.provider
}

func (s *Service) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(s.store, s.provider, opts...)
}

func (s *Service) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(s.store, s.provider, opts...)
}

func (s *Service) NewIntentService(opts ...intent.Option) (*intent.Service, error) {
	return intent.NewService(s.provider, opts...)
}
