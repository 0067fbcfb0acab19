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

package router

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/mcuadros/go-gin-prometheus"

	"github.com/TopChef/TopChef-sub000/broker/config"
	"github.com/TopChef/TopChef-sub000/broker/handlers"
	"github.com/TopChef/TopChef-sub000/broker/middlewares"
	"github.com/TopChef/TopChef-sub000/broker/service"
	logger "github.com/TopChef/TopChef-sub000/internal/tclog"
)

const PrometheusSubsystemName = "topchef_broker"

func Init(cfg *config.Config, service service.Service) (*gin.Engine, error) {
	// Set mode.
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	h := handlers.New(service)

	// Prometheus metrics.
	p := ginprometheus.NewPrometheus(PrometheusSubsystemName)
	// URL removes query string to keep label cardinality low.
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		return c.Request.URL.Path
	}
	p.Use(r)

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true

	// Middleware
	r.Use(ginzap.Ginzap(logger.GinLogger.Desugar(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger.GinLogger.Desugar(), true))
	r.Use(middlewares.Error())
	r.Use(cors.New(corsConfig))

	// Router
	apiv1 := r.Group("/api/v1")

	// Service
	sv := apiv1.Group("/services")
	sv.POST("", h.CreateService)
	sv.DELETE(":id", h.DestroyService)
	sv.PATCH(":id", h.UpdateService)
	sv.GET(":id", h.GetService)
	sv.GET("", h.GetServices)
	sv.POST(":id/jobs", h.SubmitJob)
	sv.GET(":id/jobs", h.GetServiceJobs)
	sv.GET(":id/jobs/next", h.NextJob)

	// Job
	job := apiv1.Group("/jobs")
	job.GET("", h.GetJobs)
	job.GET(":id", h.GetJob)
	job.PATCH(":id", h.UpdateJob)
	job.DELETE(":id", h.DestroyJob)

	// Health Check
	r.GET("/healthy", h.GetHealth)

	return r, nil
}
