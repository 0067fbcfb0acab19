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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "topchef"

var (
	// SubmitJobCount counts job submissions per service.
	SubmitJobCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submit_job_total",
		Help:      "Counter of submitted jobs.",
	}, []string{"service"})

	// ValidationFailureCount counts schema validation rejections.
	ValidationFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failure_total",
		Help:      "Counter of documents rejected by schema validation.",
	}, []string{"document"})

	// NextJobCount counts next-job selections that returned a job.
	NextJobCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "next_job_total",
		Help:      "Counter of next-job selections that returned a job.",
	}, []string{"service"})

	// NextJobEmptyCount counts next-job selections on an empty queue.
	NextJobEmptyCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "next_job_empty_total",
		Help:      "Counter of next-job selections that found no job.",
	}, []string{"service"})
)
