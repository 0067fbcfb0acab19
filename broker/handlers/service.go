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
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TopChef/TopChef-sub000/broker/types"
)

// @Summary Create Service
// @Description Register a service with its registration and result schemas
// @Tags Service
// @Accept json
// @Produce json
// @Param Service body types.CreateServiceRequest true "Service"
// @Success 200 {object} models.Service
// @Failure 400
// @Failure 422
// @Failure 500
// @Router /services [post]
func (h *Handlers) CreateService(ctx *gin.Context) {
	var json types.CreateServiceRequest
	if err := ctx.ShouldBindJSON(&json); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	svc, err := h.service.CreateService(ctx.Request.Context(), json)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, svc)
}

// @Summary Destroy Service
// @Description Deregister a service, cascading to its jobs and documents
// @Tags Service
// @Param id path string true "id"
// @Success 200
// @Failure 404
// @Failure 500
// @Router /services/{id} [delete]
func (h *Handlers) DestroyService(ctx *gin.Context) {
	var params types.ServiceParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	if err := h.service.DestroyService(ctx.Request.Context(), params.ID); err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.Status(http.StatusOK)
}

// @Summary Update Service
// @Description Update name, description or availability
// @Tags Service
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param Service body types.UpdateServiceRequest true "Service"
// @Success 200 {object} models.Service
// @Failure 404
// @Failure 422
// @Failure 500
// @Router /services/{id} [patch]
func (h *Handlers) UpdateService(ctx *gin.Context) {
	var params types.ServiceParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	var json types.UpdateServiceRequest
	if err := ctx.ShouldBindJSON(&json); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	svc, err := h.service.UpdateService(ctx.Request.Context(), params.ID, json)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, svc)
}

// @Summary Get Service
// @Description Get Service by id
// @Tags Service
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} models.Service
// @Failure 404
// @Failure 500
// @Router /services/{id} [get]
func (h *Handlers) GetService(ctx *gin.Context) {
	var params types.ServiceParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	svc, err := h.service.GetService(ctx.Request.Context(), params.ID)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, svc)
}

// @Summary Get Services
// @Description Get Services
// @Tags Service
// @Produce json
// @Param page query int true "current page" default(0)
// @Param per_page query int true "return max item count, default 10, max 50" default(10) minimum(2) maximum(50)
// @Success 200 {object} []models.Service
// @Failure 400
// @Failure 500
// @Router /services [get]
func (h *Handlers) GetServices(ctx *gin.Context) {
	var query types.GetServicesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	h.setPaginationDefault(&query.Page, &query.PerPage)
	services, count, err := h.service.GetServices(ctx.Request.Context(), query)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	h.setPaginationLinkHeader(ctx, query.Page, query.PerPage, int(count))
	ctx.JSON(http.StatusOK, services)
}
