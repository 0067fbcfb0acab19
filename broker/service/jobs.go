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

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/TopChef/TopChef-sub000/broker/jobqueue"
	"github.com/TopChef/TopChef-sub000/broker/metrics"
	"github.com/TopChef/TopChef-sub000/broker/models"
	"github.com/TopChef/TopChef-sub000/broker/schemas"
	"github.com/TopChef/TopChef-sub000/broker/types"
	logger "github.com/TopChef/TopChef-sub000/internal/tclog"
	"github.com/TopChef/TopChef-sub000/internal/tcerrors"
)

func (s *service) SubmitJob(ctx context.Context, serviceID string, json types.CreateJobRequest) (*models.Job, error) {
	svc, err := s.getServiceRow(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	registrationSchema, err := s.docs.Get(ctx, svc.RegistrationSchemaID)
	if err != nil {
		return nil, tcerrors.NewStorage("get registration schema", err)
	}

	// Reject before anything is written; a failed submission leaves no trace
	// in either store.
	if err := schemas.Validate(registrationSchema, json.Parameters); err != nil {
		metrics.ValidationFailureCount.WithLabelValues("parameters").Inc()
		return nil, err
	}

	parametersID := uuid.NewString()
	if err := s.docs.Put(ctx, parametersID, json.Parameters); err != nil {
		return nil, err
	}

	job := models.Job{
		BaseModel: models.BaseModel{
			ID: uuid.NewString(),
		},
		ServiceID:     serviceID,
		ParametersID:  parametersID,
		Status:        models.JobStatusRegistered,
		DateSubmitted: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&job).Error; err != nil {
		s.compensateDocuments(ctx, parametersID)
		return nil, tcerrors.NewStorage("create job", err)
	}

	logger.WithServiceAndJobID(serviceID, job.ID).Info("job submitted")

	job.Parameters = models.JSONMap(json.Parameters)
	return &job, nil
}

func (s *service) DestroyJob(ctx context.Context, id string) error {
	queue := jobqueue.New(s.db)
	job, err := queue.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := queue.Delete(ctx, id); err != nil {
		return err
	}

	docIDs := []string{job.ParametersID}
	if job.ResultsID != "" {
		docIDs = append(docIDs, job.ResultsID)
	}
	return s.deleteDocuments(ctx, docIDs...)
}

func (s *service) UpdateJob(ctx context.Context, id string, json types.UpdateJobRequest) (*models.Job, error) {
	queue := jobqueue.New(s.db)
	job, err := queue.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// The update map carries only the fields this request supplied. A
	// status-only modify must never write back a results reference read
	// before a concurrent results report.
	updates := map[string]any{}

	var (
		newResultsID string
		oldResultsID string
	)
	if json.Results != nil {
		svc, err := s.getServiceRow(ctx, job.ServiceID)
		if err != nil {
			return nil, err
		}

		resultSchema, err := s.docs.Get(ctx, svc.ResultSchemaID)
		if err != nil {
			return nil, tcerrors.NewStorage("get result schema", err)
		}

		// Validated before any write; an invalid report leaves the job
		// untouched.
		if err := schemas.Validate(resultSchema, json.Results); err != nil {
			metrics.ValidationFailureCount.WithLabelValues("results").Inc()
			return nil, err
		}

		// Results go to a fresh document so a failed row update never
		// clobbers the previous report.
		newResultsID = uuid.NewString()
		if err := s.docs.Put(ctx, newResultsID, json.Results); err != nil {
			return nil, err
		}
		oldResultsID = job.ResultsID
		updates["results_id"] = newResultsID
	}

	// Status transitions are permissive: any value overwrites any other.
	if json.Status != "" {
		updates["status"] = json.Status
		job.Status = json.Status
	}

	if err := queue.Update(ctx, job.ID, updates); err != nil {
		if newResultsID != "" {
			s.compensateDocuments(ctx, newResultsID)
		}
		return nil, err
	}

	if oldResultsID != "" {
		s.compensateDocuments(ctx, oldResultsID)
	}

	logger.WithServiceAndJobID(job.ServiceID, job.ID).Infof("job updated to status %s", job.Status)
	return s.GetJob(ctx, id)
}

func (s *service) GetJob(ctx context.Context, id string) (*models.Job, error) {
	job, err := jobqueue.New(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.attachDocuments(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (s *service) GetJobs(ctx context.Context, q types.GetJobsQuery) ([]models.Job, int64, error) {
	var count int64
	var jobs []models.Job
	if err := s.db.WithContext(ctx).Scopes(models.Paginate(q.Page, q.PerPage)).Where(&models.Job{
		ServiceID: q.ServiceID,
		Status:    q.Status,
	}).Order("date_submitted ASC, id ASC").Find(&jobs).Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		return nil, 0, tcerrors.NewStorage("list jobs", err)
	}

	for i := range jobs {
		if err := s.attachDocuments(ctx, &jobs[i]); err != nil {
			return nil, 0, err
		}
	}

	return jobs, count, nil
}

func (s *service) NextJob(ctx context.Context, serviceID string) (*models.Job, error) {
	if _, err := s.getServiceRow(ctx, serviceID); err != nil {
		return nil, err
	}

	job, err := jobqueue.New(s.db, jobqueue.WithService(serviceID)).Next(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.attachDocuments(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (s *service) attachDocuments(ctx context.Context, job *models.Job) error {
	parameters, err := s.docs.Get(ctx, job.ParametersID)
	if err != nil {
		return tcerrors.NewStorage("get job parameters", err)
	}
	job.Parameters = parameters

	if job.ResultsID != "" {
		results, err := s.docs.Get(ctx, job.ResultsID)
		if err != nil {
			return tcerrors.NewStorage("get job results", err)
		}
		job.Results = results
	}

	return nil
}
