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

package models

// Service is one registered remote capability. The two schema documents are
// written once at registration and never change afterwards; changing them
// could invalidate jobs already in the queue. Only Name, Description and
// IsServiceAvailable are mutable.
type Service struct {
	BaseModel
	Name                 string `gorm:"column:name;type:varchar(256);not null;comment:service name" json:"name"`
	Description          string `gorm:"column:description;type:varchar(1024);comment:description" json:"description"`
	RegistrationSchemaID string `gorm:"column:registration_schema_id;type:varchar(36);not null;comment:registration schema document id" json:"-"`
	ResultSchemaID       string `gorm:"column:result_schema_id;type:varchar(36);not null;comment:result schema document id" json:"-"`
	IsServiceAvailable   bool   `gorm:"column:is_service_available;not null;default:false;comment:advisory availability flag" json:"is_service_available"`
	Jobs                 []Job  `gorm:"foreignKey:ServiceID" json:"-"`

	// Schema documents joined in from the document store.
	JobRegistrationSchema JSONMap `gorm:"-" json:"job_registration_schema,omitempty"`
	JobResultSchema       JSONMap `gorm:"-" json:"job_result_schema,omitempty"`
}
