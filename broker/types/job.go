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

package types

type CreateJobRequest struct {
	Parameters map[string]any `json:"parameters" binding:"required"`
}

type UpdateJobRequest struct {
	Status  string         `json:"status" binding:"omitempty,oneof=REGISTERED WORKING COMPLETED ERROR"`
	Results map[string]any `json:"results" binding:"omitempty"`
}

type JobParams struct {
	ID string `uri:"id" binding:"required"`
}

type GetJobsQuery struct {
	ServiceID string `form:"service_id" binding:"omitempty"`
	Status    string `form:"status" binding:"omitempty,oneof=REGISTERED WORKING COMPLETED ERROR"`
	Page      int    `form:"page" binding:"omitempty,gte=1"`
	PerPage   int    `form:"per_page" binding:"omitempty,gte=1,lte=50"`
}
