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
	"errors"

	rediscache "github.com/go-redis/cache/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TopChef/TopChef-sub000/broker/cache"
	"github.com/TopChef/TopChef-sub000/broker/models"
	"github.com/TopChef/TopChef-sub000/broker/schemas"
	"github.com/TopChef/TopChef-sub000/broker/types"
	logger "github.com/TopChef/TopChef-sub000/internal/tclog"
	"github.com/TopChef/TopChef-sub000/internal/tcerrors"
	"github.com/TopChef/TopChef-sub000/pkg/structure"
)

func (s *service) CreateService(ctx context.Context, json types.CreateServiceRequest) (*models.Service, error) {
	if err := schemas.CheckSchema("job_registration_schema", json.JobRegistrationSchema); err != nil {
		return nil, err
	}
	if err := schemas.CheckSchema("job_result_schema", json.JobResultSchema); err != nil {
		return nil, err
	}

	registrationSchemaID := uuid.NewString()
	if err := s.docs.Put(ctx, registrationSchemaID, json.JobRegistrationSchema); err != nil {
		return nil, err
	}

	resultSchemaID := uuid.NewString()
	if err := s.docs.Put(ctx, resultSchemaID, json.JobResultSchema); err != nil {
		s.compensateDocuments(ctx, registrationSchemaID)
		return nil, err
	}

	svc := models.Service{
		BaseModel: models.BaseModel{
			ID: uuid.NewString(),
		},
		Name:                 json.Name,
		Description:          json.Description,
		RegistrationSchemaID: registrationSchemaID,
		ResultSchemaID:       resultSchemaID,
		IsServiceAvailable:   false,
	}
	if err := s.db.WithContext(ctx).Create(&svc).Error; err != nil {
		s.compensateDocuments(ctx, registrationSchemaID, resultSchemaID)
		return nil, tcerrors.NewStorage("create service", err)
	}

	svc.JobRegistrationSchema = models.JSONMap(json.JobRegistrationSchema)
	svc.JobResultSchema = models.JSONMap(json.JobResultSchema)
	return &svc, nil
}

func (s *service) DestroyService(ctx context.Context, id string) error {
	svc, err := s.getServiceRow(ctx, id)
	if err != nil {
		return err
	}

	var jobs []models.Job
	if err := s.db.WithContext(ctx).Where("service_id = ?", id).Find(&jobs).Error; err != nil {
		return tcerrors.NewStorage("load service jobs", err)
	}

	// Rows first, in one transaction, so a partial cascade is never visible.
	// Documents for deleted rows are unreachable even if their removal below
	// fails part way.
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&models.Job{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Service{}, "id = ?", id).Error
	}); err != nil {
		return tcerrors.NewStorage("destroy service", err)
	}

	s.invalidateService(ctx, id)

	docIDs := []string{svc.RegistrationSchemaID, svc.ResultSchemaID}
	for _, job := range jobs {
		docIDs = append(docIDs, job.ParametersID)
		if job.ResultsID != "" {
			docIDs = append(docIDs, job.ResultsID)
		}
	}
	return s.deleteDocuments(ctx, docIDs...)
}

func (s *service) UpdateService(ctx context.Context, id string, json types.UpdateServiceRequest) (*models.Service, error) {
	if _, err := s.getServiceRow(ctx, id); err != nil {
		return nil, err
	}

	// Only name, description and the availability flag are mutable. The
	// schema documents are immutable for the service's whole lifetime.
	updates, err := structure.StructToMap(json)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Service{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, tcerrors.NewStorage("update service", err)
		}
	}

	s.invalidateService(ctx, id)
	return s.GetService(ctx, id)
}

func (s *service) GetService(ctx context.Context, id string) (*models.Service, error) {
	if s.cache != nil {
		svc := models.Service{}
		if err := s.cache.Get(ctx, cache.MakeServiceCacheKey(id), &svc); err == nil {
			return &svc, nil
		} else if !errors.Is(err, rediscache.ErrCacheMiss) {
			logger.Warnf("service %s cache read failed: %s", id, err.Error())
		}
	}

	svc, err := s.getServiceRow(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.attachSchemas(ctx, svc); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(&rediscache.Item{
			Ctx:   ctx,
			Key:   cache.MakeServiceCacheKey(id),
			Value: svc,
			TTL:   s.cache.TTL,
		}); err != nil {
			logger.Warnf("service %s cache write failed: %s", id, err.Error())
		}
	}

	return svc, nil
}

func (s *service) GetServices(ctx context.Context, q types.GetServicesQuery) ([]models.Service, int64, error) {
	var count int64
	var services []models.Service
	if err := s.db.WithContext(ctx).Scopes(models.Paginate(q.Page, q.PerPage)).Where(&models.Service{
		Name: q.Name,
	}).Order("created_at ASC, id ASC").Find(&services).Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		return nil, 0, tcerrors.NewStorage("list services", err)
	}

	for i := range services {
		if err := s.attachSchemas(ctx, &services[i]); err != nil {
			return nil, 0, err
		}
	}

	return services, count, nil
}

func (s *service) getServiceRow(ctx context.Context, id string) (*models.Service, error) {
	svc := models.Service{}
	if err := s.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tcerrors.NewNotFound("service", id)
		}
		return nil, tcerrors.NewStorage("get service", err)
	}

	return &svc, nil
}

func (s *service) attachSchemas(ctx context.Context, svc *models.Service) error {
	registrationSchema, err := s.docs.Get(ctx, svc.RegistrationSchemaID)
	if err != nil {
		return tcerrors.NewStorage("get registration schema", err)
	}

	resultSchema, err := s.docs.Get(ctx, svc.ResultSchemaID)
	if err != nil {
		return tcerrors.NewStorage("get result schema", err)
	}

	svc.JobRegistrationSchema = registrationSchema
	svc.JobResultSchema = resultSchema
	return nil
}

func (s *service) invalidateService(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.MakeServiceCacheKey(id)); err != nil && !errors.Is(err, rediscache.ErrCacheMiss) {
		logger.Warnf("service %s cache invalidation failed: %s", id, err.Error())
	}
}

// compensateDocuments undoes document writes after a failed relational write.
// Failures here only leak unreachable blobs, so they are logged, not returned.
func (s *service) compensateDocuments(ctx context.Context, ids ...string) {
	for _, id := range ids {
		if err := s.docs.Delete(ctx, id); err != nil && !tcerrors.IsNotFound(err) {
			logger.Errorf("compensating delete of document %s failed: %s", id, err.Error())
		}
	}
}

// deleteDocuments removes documents whose owning rows are already gone.
func (s *service) deleteDocuments(ctx context.Context, ids ...string) error {
	var failed error
	for _, id := range ids {
		if err := s.docs.Delete(ctx, id); err != nil && !tcerrors.IsNotFound(err) {
			logger.Errorf("delete of document %s failed: %s", id, err.Error())
			failed = err
		}
	}
	if failed != nil {
		return tcerrors.NewStorage("delete documents", failed)
	}

	return nil
}
