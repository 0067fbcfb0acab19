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

type CreateServiceRequest struct {
	Name                  string         `json:"name" binding:"required"`
	Description           string         `json:"description" binding:"omitempty"`
	JobRegistrationSchema map[string]any `json:"job_registration_schema" binding:"required"`
	JobResultSchema       map[string]any `json:"job_result_schema" binding:"required"`
}

type UpdateServiceRequest struct {
	Name               string `json:"name,omitempty" binding:"omitempty"`
	Description        string `json:"description,omitempty" binding:"omitempty"`
	IsServiceAvailable *bool  `json:"is_service_available,omitempty" binding:"omitempty"`
}

type ServiceParams struct {
	ID string `uri:"id" binding:"required"`
}

type GetServicesQuery struct {
	Name    string `form:"name" binding:"omitempty"`
	Page    int    `form:"page" binding:"omitempty,gte=1"`
	PerPage int    `form:"per_page" binding:"omitempty,gte=1,lte=50"`
}
