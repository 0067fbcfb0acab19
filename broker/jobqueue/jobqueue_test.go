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

package jobqueue

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormschema "gorm.io/gorm/schema"

	"github.com/TopChef/TopChef-sub000/broker/models"
	"github.com/TopChef/TopChef-sub000/internal/tcerrors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "broker.db")), &gorm.Config{
		NamingStrategy: gormschema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Service{}, &models.Job{}))

	return db
}

func seedService(t *testing.T, db *gorm.DB) *models.Service {
	t.Helper()

	svc := models.Service{
		BaseModel:            models.BaseModel{ID: uuid.NewString()},
		Name:                 "nmr-spectrometer",
		RegistrationSchemaID: uuid.NewString(),
		ResultSchemaID:       uuid.NewString(),
	}
	require.NoError(t, db.Create(&svc).Error)

	return &svc
}

func seedJob(t *testing.T, db *gorm.DB, serviceID, status string, submitted time.Time) *models.Job {
	t.Helper()

	job := models.Job{
		BaseModel:     models.BaseModel{ID: uuid.NewString()},
		ServiceID:     serviceID,
		ParametersID:  uuid.NewString(),
		Status:        status,
		DateSubmitted: submitted,
	}
	require.NoError(t, db.Create(&job).Error)

	return &job
}

func TestQueue_Next(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns oldest registered job deterministically", func(t *testing.T) {
		assert := assert.New(t)
		db := newTestDB(t)
		svc := seedService(t, db)

		first := seedJob(t, db, svc.ID, models.JobStatusRegistered, base)
		second := seedJob(t, db, svc.ID, models.JobStatusRegistered, base.Add(time.Minute))
		seedJob(t, db, svc.ID, models.JobStatusRegistered, base.Add(2*time.Minute))

		queue := New(db, WithService(svc.ID))

		// Selection is a read, not a claim: repeated calls with no
		// intervening modification return the same job.
		for i := 0; i < 3; i++ {
			job, err := queue.Next(ctx)
			assert.NoError(err)
			assert.Equal(first.ID, job.ID)
		}

		// Advancing requires an explicit status change.
		require.NoError(t, db.Model(&models.Job{}).Where("id = ?", first.ID).
			Update("status", models.JobStatusCompleted).Error)

		job, err := queue.Next(ctx)
		assert.NoError(err)
		assert.Equal(second.ID, job.ID)
	})

	t.Run("skips working and terminal jobs", func(t *testing.T) {
		assert := assert.New(t)
		db := newTestDB(t)
		svc := seedService(t, db)

		seedJob(t, db, svc.ID, models.JobStatusWorking, base)
		seedJob(t, db, svc.ID, models.JobStatusCompleted, base.Add(time.Minute))
		seedJob(t, db, svc.ID, models.JobStatusError, base.Add(2*time.Minute))
		registered := seedJob(t, db, svc.ID, models.JobStatusRegistered, base.Add(3*time.Minute))

		job, err := New(db, WithService(svc.ID)).Next(ctx)
		assert.NoError(err)
		assert.Equal(registered.ID, job.ID)
	})

	t.Run("empty queue yields ErrNoJobAvailable", func(t *testing.T) {
		assert := assert.New(t)
		db := newTestDB(t)
		svc := seedService(t, db)

		seedJob(t, db, svc.ID, models.JobStatusCompleted, base)

		job, err := New(db, WithService(svc.ID)).Next(ctx)
		assert.Nil(job)
		assert.ErrorIs(err, ErrNoJobAvailable)
	})

	t.Run("identical timestamps break ties by id", func(t *testing.T) {
		assert := assert.New(t)
		db := newTestDB(t)
		svc := seedService(t, db)

		a := seedJob(t, db, svc.ID, models.JobStatusRegistered, base)
		b := seedJob(t, db, svc.ID, models.JobStatusRegistered, base)

		want := a.ID
		if b.ID < a.ID {
			want = b.ID
		}

		for i := 0; i < 3; i++ {
			job, err := New(db, WithService(svc.ID)).Next(ctx)
			assert.NoError(err)
			assert.Equal(want, job.ID)
		}
	})

	t.Run("selection is scoped to the service", func(t *testing.T) {
		assert := assert.New(t)
		db := newTestDB(t)
		svc := seedService(t, db)
		other := seedService(t, db)

		seedJob(t, db, other.ID, models.JobStatusRegistered, base)
		mine := seedJob(t, db, svc.ID, models.JobStatusRegistered, base.Add(time.Hour))

		job, err := New(db, WithService(svc.ID)).Next(ctx)
		assert.NoError(err)
		assert.Equal(mine.ID, job.ID)
	})
}

func TestQueue_Views(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("global and scoped counts", func(t *testing.T) {
		assert := assert.New(t)
		db := newTestDB(t)
		svc := seedService(t, db)
		other := seedService(t, db)

		seedJob(t, db, svc.ID, models.JobStatusRegistered, base)
		seedJob(t, db, svc.ID, models.JobStatusWorking, base.Add(time.Minute))
		seedJob(t, db, other.ID, models.JobStatusRegistered, base.Add(2*time.Minute))

		globalCount, err := New(db).Count(ctx)
		assert.NoError(err)
		assert.Equal(int64(3), globalCount)

		scopedCount, err := New(db, WithService(svc.ID)).Count(ctx)
		assert.NoError(err)
		assert.Equal(int64(2), scopedCount)
	})

	t.Run("get and membership", func(t *testing.T) {
		assert := assert.New(t)
		db := newTestDB(t)
		svc := seedService(t, db)
		other := seedService(t, db)

		job := seedJob(t, db, svc.ID, models.JobStatusRegistered, base)

		queue := New(db, WithService(svc.ID))

		got, err := queue.Get(ctx, job.ID)
		assert.NoError(err)
		assert.True(got.Equal(job))

		ok, err := queue.Contains(ctx, job.ID)
		assert.NoError(err)
		assert.True(ok)

		ok, err = queue.ContainsJob(ctx, job)
		assert.NoError(err)
		assert.True(ok)

		// The scoped view does not see another service's jobs.
		foreign := seedJob(t, db, other.ID, models.JobStatusRegistered, base)
		ok, err = queue.Contains(ctx, foreign.ID)
		assert.NoError(err)
		assert.False(ok)

		_, err = queue.Get(ctx, foreign.ID)
		var notFoundErr *tcerrors.NotFoundError
		assert.ErrorAs(err, &notFoundErr)
	})

	t.Run("list and iteration materialize jobs in order", func(t *testing.T) {
		assert := assert.New(t)
		db := newTestDB(t)
		svc := seedService(t, db)

		first := seedJob(t, db, svc.ID, models.JobStatusRegistered, base)
		second := seedJob(t, db, svc.ID, models.JobStatusWorking, base.Add(time.Minute))

		queue := New(db, WithService(svc.ID))

		jobs, err := queue.List(ctx)
		assert.NoError(err)
		assert.Len(jobs, 2)
		assert.Equal(first.ID, jobs[0].ID)
		assert.Equal(second.ID, jobs[1].ID)

		var seen []string
		err = queue.Each(ctx, func(job *models.Job) error {
			seen = append(seen, job.ID)
			return nil
		})
		assert.NoError(err)
		assert.Equal([]string{first.ID, second.ID}, seen)
	})

	t.Run("update writes only the supplied columns", func(t *testing.T) {
		assert := assert.New(t)
		db := newTestDB(t)
		svc := seedService(t, db)

		job := seedJob(t, db, svc.ID, models.JobStatusRegistered, base)
		resultsID := uuid.NewString()

		queue := New(db, WithService(svc.ID))
		assert.NoError(queue.Update(ctx, job.ID, map[string]any{
			"status":     models.JobStatusWorking,
			"results_id": resultsID,
		}))

		got, err := queue.Get(ctx, job.ID)
		assert.NoError(err)
		assert.Equal(models.JobStatusWorking, got.Status)
		assert.Equal(resultsID, got.ResultsID)
		assert.Equal(job.DateSubmitted.Unix(), got.DateSubmitted.Unix())

		// A status-only update leaves the results reference alone.
		assert.NoError(queue.Update(ctx, job.ID, map[string]any{
			"status": models.JobStatusCompleted,
		}))

		got, err = queue.Get(ctx, job.ID)
		assert.NoError(err)
		assert.Equal(models.JobStatusCompleted, got.Status)
		assert.Equal(resultsID, got.ResultsID)
	})

	t.Run("stale status writer cannot erase a results reference", func(t *testing.T) {
		assert := assert.New(t)
		db := newTestDB(t)
		svc := seedService(t, db)

		job := seedJob(t, db, svc.ID, models.JobStatusRegistered, base)
		queue := New(db, WithService(svc.ID))

		// Two writers read the job before either writes. The first reports
		// results, the second only moves the status; the second's stale empty
		// ResultsID must never reach the row.
		reporter, err := queue.Get(ctx, job.ID)
		require.NoError(t, err)
		mover, err := queue.Get(ctx, job.ID)
		require.NoError(t, err)
		assert.Empty(mover.ResultsID)

		assert.NoError(queue.Update(ctx, reporter.ID, map[string]any{
			"status":     models.JobStatusCompleted,
			"results_id": "results-doc-1",
		}))
		assert.NoError(queue.Update(ctx, mover.ID, map[string]any{
			"status": models.JobStatusError,
		}))

		got, err := queue.Get(ctx, job.ID)
		assert.NoError(err)
		assert.Equal(models.JobStatusError, got.Status)
		assert.Equal("results-doc-1", got.ResultsID)
	})

	t.Run("update with no columns is a no-op", func(t *testing.T) {
		assert := assert.New(t)
		db := newTestDB(t)
		svc := seedService(t, db)

		job := seedJob(t, db, svc.ID, models.JobStatusRegistered, base)
		queue := New(db)

		assert.NoError(queue.Update(ctx, job.ID, nil))

		got, err := queue.Get(ctx, job.ID)
		assert.NoError(err)
		assert.Equal(models.JobStatusRegistered, got.Status)
	})

	t.Run("update and delete of absent job are not-found", func(t *testing.T) {
		assert := assert.New(t)
		db := newTestDB(t)
		seedService(t, db)

		queue := New(db)
		var notFoundErr *tcerrors.NotFoundError

		err := queue.Update(ctx, uuid.NewString(), map[string]any{"status": models.JobStatusWorking})
		assert.ErrorAs(err, &notFoundErr)

		err = queue.Delete(ctx, uuid.NewString())
		assert.ErrorAs(err, &notFoundErr)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		assert := assert.New(t)
		db := newTestDB(t)
		svc := seedService(t, db)

		job := seedJob(t, db, svc.ID, models.JobStatusRegistered, base)
		queue := New(db)

		assert.NoError(queue.Delete(ctx, job.ID))

		ok, err := queue.Contains(ctx, job.ID)
		assert.NoError(err)
		assert.False(ok)
	})
}
