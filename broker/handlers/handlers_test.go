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

package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TopChef/TopChef-sub000/broker/middlewares"
	"github.com/TopChef/TopChef-sub000/broker/models"
	"github.com/TopChef/TopChef-sub000/broker/types"
)

// fakeService stubs the broker core behind the handlers. Unset methods fail
// loudly so a test can't silently exercise the wrong path.
type fakeService struct {
	createService  func(ctx context.Context, json types.CreateServiceRequest) (*models.Service, error)
	destroyService func(ctx context.Context, id string) error
	updateService  func(ctx context.Context, id string, json types.UpdateServiceRequest) (*models.Service, error)
	getService     func(ctx context.Context, id string) (*models.Service, error)
	getServices    func(ctx context.Context, q types.GetServicesQuery) ([]models.Service, int64, error)

	submitJob  func(ctx context.Context, serviceID string, json types.CreateJobRequest) (*models.Job, error)
	destroyJob func(ctx context.Context, id string) error
	updateJob  func(ctx context.Context, id string, json types.UpdateJobRequest) (*models.Job, error)
	getJob     func(ctx context.Context, id string) (*models.Job, error)
	getJobs    func(ctx context.Context, q types.GetJobsQuery) ([]models.Job, int64, error)
	nextJob    func(ctx context.Context, serviceID string) (*models.Job, error)
}

var errNotStubbed = errors.New("not stubbed")

func (f *fakeService) CreateService(ctx context.Context, json types.CreateServiceRequest) (*models.Service, error) {
	if f.createService == nil {
		return nil, errNotStubbed
	}
	return f.createService(ctx, json)
}

func (f *fakeService) DestroyService(ctx context.Context, id string) error {
	if f.destroyService == nil {
		return errNotStubbed
	}
	return f.destroyService(ctx, id)
}

func (f *fakeService) UpdateService(ctx context.Context, id string, json types.UpdateServiceRequest) (*models.Service, error) {
	if f.updateService == nil {
		return nil, errNotStubbed
	}
	return f.updateService(ctx, id, json)
}

func (f *fakeService) GetService(ctx context.Context, id string) (*models.Service, error) {
	if f.getService == nil {
		return nil, errNotStubbed
	}
	return f.getService(ctx, id)
}

func (f *fakeService) GetServices(ctx context.Context, q types.GetServicesQuery) ([]models.Service, int64, error) {
	if f.getServices == nil {
		return nil, 0, errNotStubbed
	}
	return f.getServices(ctx, q)
}

func (f *fakeService) SubmitJob(ctx context.Context, serviceID string, json types.CreateJobRequest) (*models.Job, error) {
	if f.submitJob == nil {
		return nil, errNotStubbed
	}
	return f.submitJob(ctx, serviceID, json)
}

func (f *fakeService) DestroyJob(ctx context.Context, id string) error {
	if f.destroyJob == nil {
		return errNotStubbed
	}
	return f.destroyJob(ctx, id)
}

func (f *fakeService) UpdateJob(ctx context.Context, id string, json types.UpdateJobRequest) (*models.Job, error) {
	if f.updateJob == nil {
		return nil, errNotStubbed
	}
	return f.updateJob(ctx, id, json)
}

func (f *fakeService) GetJob(ctx context.Context, id string) (*models.Job, error) {
	if f.getJob == nil {
		return nil, errNotStubbed
	}
	return f.getJob(ctx, id)
}

func (f *fakeService) GetJobs(ctx context.Context, q types.GetJobsQuery) ([]models.Job, int64, error) {
	if f.getJobs == nil {
		return nil, 0, errNotStubbed
	}
	return f.getJobs(ctx, q)
}

func (f *fakeService) NextJob(ctx context.Context, serviceID string) (*models.Job, error) {
	if f.nextJob == nil {
		return nil, errNotStubbed
	}
	return f.nextJob(ctx, serviceID)
}

// newTestRouter mounts the handlers the same way the production router does,
// minus the observability middleware.
func newTestRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := New(svc)
	r := gin.New()
	r.Use(middlewares.Error())

	api := r.Group("/api/v1")

	s := api.Group("/services")
	s.POST("", h.CreateService)
	s.GET("", h.GetServices)
	s.GET(":id", h.GetService)
	s.PATCH(":id", h.UpdateService)
	s.DELETE(":id", h.DestroyService)
	s.POST(":id/jobs", h.SubmitJob)
	s.GET(":id/jobs", h.GetServiceJobs)
	s.GET(":id/jobs/next", h.NextJob)

	j := api.Group("/jobs")
	j.GET("", h.GetJobs)
	j.GET(":id", h.GetJob)
	j.PATCH(":id", h.UpdateJob)
	j.DELETE(":id", h.DestroyJob)

	return r
}
