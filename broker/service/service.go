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

// Package service implements the broker core behind the REST boundary: the
// service registry, schema-gated job admission and the job state machine.
// Operations that touch both the relational store and the document store
// write the document first and compensate with a document delete when the
// relational write fails, so neither store ever references the other's
// missing data.
package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/TopChef/TopChef-sub000/broker/cache"
	"github.com/TopChef/TopChef-sub000/broker/database"
	"github.com/TopChef/TopChef-sub000/broker/docstore"
	"github.com/TopChef/TopChef-sub000/broker/models"
	"github.com/TopChef/TopChef-sub000/broker/types"
)

// Service is the operation surface consumed by the REST handlers.
type Service interface {
	CreateService(ctx context.Context, json types.CreateServiceRequest) (*models.Service, error)
	DestroyService(ctx context.Context, id string) error
	UpdateService(ctx context.Context, id string, json types.UpdateServiceRequest) (*models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	GetServices(ctx context.Context, q types.GetServicesQuery) ([]models.Service, int64, error)

	SubmitJob(ctx context.Context, serviceID string, json types.CreateJobRequest) (*models.Job, error)
	DestroyJob(ctx context.Context, id string) error
	UpdateJob(ctx context.Context, id string, json types.UpdateJobRequest) (*models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	GetJobs(ctx context.Context, q types.GetJobsQuery) ([]models.Job, int64, error)
	NextJob(ctx context.Context, serviceID string) (*models.Job, error)
}

type service struct {
	db    *gorm.DB
	docs  docstore.Store
	cache *cache.Cache
}

// Option is a functional option for service.
type Option func(s *service)

// WithDatabase sets the relational store handle.
func WithDatabase(database *database.Database) Option {
	return func(s *service) {
		s.db = database.DB
	}
}

// WithDocStore sets the document store.
func WithDocStore(docs docstore.Store) Option {
	return func(s *service) {
		s.docs = docs
	}
}

// WithCache sets the service record cache.
func WithCache(cache *cache.Cache) Option {
	return func(s *service) {
		s.cache = cache
	}
}

// New returns a new Service instance.
func New(options ...Option) Service {
	s := &service{}

	for _, opt := range options {
		opt(s)
	}

	return s
}
