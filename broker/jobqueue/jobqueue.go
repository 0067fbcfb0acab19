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

// Package jobqueue exposes the job collection as a queryable view. One Queue
// type serves both the global view and the service-scoped view; the scope is
// a constructor option, not a subtype.
package jobqueue

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TopChef/TopChef-sub000/broker/models"
	"github.com/TopChef/TopChef-sub000/internal/tcerrors"
)

// ErrNoJobAvailable signals an empty queue on next-job selection. It is a
// normal outcome, not a failure; the HTTP boundary maps it to a no-content
// response rather than a not-found one.
var ErrNoJobAvailable = errors.New("no job available")

const eachBatchSize = 100

// Queue is a view over the job collection backed by the relational store.
type Queue struct {
	db        *gorm.DB
	serviceID string
}

// Option configures a Queue.
type Option func(q *Queue)

// WithService restricts the view to jobs owned by the given service.
func WithService(serviceID string) Option {
	return func(q *Queue) {
		q.serviceID = serviceID
	}
}

// New returns a job queue view. Without options the view spans every job in
// the system.
func New(db *gorm.DB, options ...Option) *Queue {
	q := &Queue{db: db}
	for _, opt := range options {
		opt(q)
	}

	return q
}

func (q *Queue) scoped(ctx context.Context) *gorm.DB {
	db := q.db.WithContext(ctx)
	if q.serviceID != "" {
		db = db.Where("service_id = ?", q.serviceID)
	}

	return db
}

// Get returns the job with the given id within the view.
func (q *Queue) Get(ctx context.Context, id string) (*models.Job, error) {
	job := models.Job{}
	if err := q.scoped(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tcerrors.NewNotFound("job", id)
		}
		return nil, tcerrors.NewStorage("get job", err)
	}

	return &job, nil
}

// Update writes the supplied columns of the job with the given id. Only the
// given columns are touched, so two writers modifying disjoint fields never
// overwrite each other's values with stale reads. The row must already exist.
func (q *Queue) Update(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}

	result := q.scoped(ctx).Model(&models.Job{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return tcerrors.NewStorage("update job", result.Error)
	}
	if result.RowsAffected == 0 {
		return tcerrors.NewNotFound("job", id)
	}

	return nil
}

// Delete removes the job row with the given id.
func (q *Queue) Delete(ctx context.Context, id string) error {
	result := q.scoped(ctx).Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return tcerrors.NewStorage("delete job", result.Error)
	}
	if result.RowsAffected == 0 {
		return tcerrors.NewNotFound("job", id)
	}

	return nil
}

// Contains reports whether a job with the given id exists in the view.
func (q *Queue) Contains(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := q.scoped(ctx).Model(&models.Job{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, tcerrors.NewStorage("contains job", err)
	}

	return count > 0, nil
}

// ContainsJob reports membership by value equality, which is id equality.
func (q *Queue) ContainsJob(ctx context.Context, job *models.Job) (bool, error) {
	if job == nil {
		return false, nil
	}

	return q.Contains(ctx, job.ID)
}

// Count returns the number of jobs in the view.
func (q *Queue) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := q.scoped(ctx).Model(&models.Job{}).Count(&count).Error; err != nil {
		return 0, tcerrors.NewStorage("count jobs", err)
	}

	return count, nil
}

// List returns the materialized jobs in the view ordered by submission time.
func (q *Queue) List(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := q.scoped(ctx).Order("date_submitted ASC, id ASC").Find(&jobs).Error; err != nil {
		return nil, tcerrors.NewStorage("list jobs", err)
	}

	return jobs, nil
}

// Each calls fn for every job in the view, loading rows in batches. Iteration
// stops on the first error from fn.
func (q *Queue) Each(ctx context.Context, fn func(job *models.Job) error) error {
	var jobs []models.Job
	result := q.scoped(ctx).Order("date_submitted ASC, id ASC").FindInBatches(&jobs, eachBatchSize, func(tx *gorm.DB, batch int) error {
		for i := range jobs {
			if err := fn(&jobs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if result.Error != nil {
		return tcerrors.NewStorage("iterate jobs", result.Error)
	}

	return nil
}

// Next returns the oldest job still in REGISTERED status. Ties on the
// submission timestamp break by id so selection is deterministic on every
// backend. The read does not claim the job: repeated calls return the same
// job until its status is modified away from REGISTERED.
func (q *Queue) Next(ctx context.Context) (*models.Job, error) {
	job := models.Job{}
	err := q.scoped(ctx).
		Where("status = ?", models.JobStatusRegistered).
		Order("date_submitted ASC, id ASC").
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoJobAvailable
		}
		return nil, tcerrors.NewStorage("next job", err)
	}

	return &job, nil
}
