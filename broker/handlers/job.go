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
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TopChef/TopChef-sub000/broker/jobqueue"
	"github.com/TopChef/TopChef-sub000/broker/metrics"
	"github.com/TopChef/TopChef-sub000/broker/types"
)

// @Summary Submit Job
// @Description Submit a job against a service; parameters are validated
// @Description against the service's registration schema
// @Tags Job
// @Accept json
// @Produce json
// @Param id path string true "service id"
// @Param Job body types.CreateJobRequest true "Job"
// @Success 200 {object} models.Job
// @Failure 404
// @Failure 422
// @Failure 500
// @Router /services/{id}/jobs [post]
func (h *Handlers) SubmitJob(ctx *gin.Context) {
	var params types.ServiceParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	var json types.CreateJobRequest
	if err := ctx.ShouldBindJSON(&json); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	metrics.SubmitJobCount.WithLabelValues(params.ID).Inc()
	job, err := h.service.SubmitJob(ctx.Request.Context(), params.ID, json)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, job)
}

// @Summary Next Job
// @Description Oldest job still in REGISTERED status for the service. The
// @Description read does not claim the job; an empty queue yields 204.
// @Tags Job
// @Produce json
// @Param id path string true "service id"
// @Success 200 {object} models.Job
// @Success 204
// @Failure 404
// @Failure 500
// @Router /services/{id}/jobs/next [get]
func (h *Handlers) NextJob(ctx *gin.Context) {
	var params types.ServiceParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	job, err := h.service.NextJob(ctx.Request.Context(), params.ID)
	if err != nil {
		// An empty queue is a normal outcome, distinct from a missing
		// service.
		if errors.Is(err, jobqueue.ErrNoJobAvailable) {
			metrics.NextJobEmptyCount.WithLabelValues(params.ID).Inc()
			ctx.Status(http.StatusNoContent)
			return
		}
		ctx.Error(err) // nolint: errcheck
		return
	}

	metrics.NextJobCount.WithLabelValues(params.ID).Inc()
	ctx.JSON(http.StatusOK, job)
}

// @Summary Get Service Jobs
// @Description Jobs belonging to one service
// @Tags Job
// @Produce json
// @Param id path string true "service id"
// @Success 200 {object} []models.Job
// @Failure 404
// @Failure 500
// @Router /services/{id}/jobs [get]
func (h *Handlers) GetServiceJobs(ctx *gin.Context) {
	var params types.ServiceParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	var query types.GetJobsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}
	query.ServiceID = params.ID

	// Listing an unknown service is a 404, not an empty list.
	if _, err := h.service.GetService(ctx.Request.Context(), params.ID); err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	h.setPaginationDefault(&query.Page, &query.PerPage)
	jobs, count, err := h.service.GetJobs(ctx.Request.Context(), query)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	h.setPaginationLinkHeader(ctx, query.Page, query.PerPage, int(count))
	ctx.JSON(http.StatusOK, jobs)
}

// @Summary Get Jobs
// @Description All jobs in the system, optionally filtered
// @Tags Job
// @Produce json
// @Param page query int true "current page" default(0)
// @Param per_page query int true "return max item count, default 10, max 50" default(10) minimum(2) maximum(50)
// @Success 200 {object} []models.Job
// @Failure 400
// @Failure 500
// @Router /jobs [get]
func (h *Handlers) GetJobs(ctx *gin.Context) {
	var query types.GetJobsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	h.setPaginationDefault(&query.Page, &query.PerPage)
	jobs, count, err := h.service.GetJobs(ctx.Request.Context(), query)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	h.setPaginationLinkHeader(ctx, query.Page, query.PerPage, int(count))
	ctx.JSON(http.StatusOK, jobs)
}

// @Summary Get Job
// @Description Get Job by id
// @Tags Job
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} models.Job
// @Failure 404
// @Failure 500
// @Router /jobs/{id} [get]
func (h *Handlers) GetJob(ctx *gin.Context) {
	var params types.JobParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	job, err := h.service.GetJob(ctx.Request.Context(), params.ID)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, job)
}

// @Summary Update Job
// @Description Set status and/or report results; results are validated
// @Description against the service's result schema
// @Tags Job
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param Job body types.UpdateJobRequest true "Job"
// @Success 200 {object} models.Job
// @Failure 404
// @Failure 422
// @Failure 500
// @Router /jobs/{id} [patch]
func (h *Handlers) UpdateJob(ctx *gin.Context) {
	var params types.JobParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	var json types.UpdateJobRequest
	if err := ctx.ShouldBindJSON(&json); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	job, err := h.service.UpdateJob(ctx.Request.Context(), params.ID, json)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, job)
}

// @Summary Destroy Job
// @Description Delete a job and both of its documents
// @Tags Job
// @Param id path string true "id"
// @Success 200
// @Failure 404
// @Failure 500
// @Router /jobs/{id} [delete]
func (h *Handlers) DestroyJob(ctx *gin.Context) {
	var params types.JobParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	if err := h.service.DestroyJob(ctx.Request.Context(), params.ID); err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.Status(http.StatusOK)
}
