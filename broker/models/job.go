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

import "time"

// Job status values. Transitions are permissive: any status may overwrite any
// other, so a worker can report ERROR without ever having set WORKING.
const (
	JobStatusRegistered = "REGISTERED"
	JobStatusWorking    = "WORKING"
	JobStatusCompleted  = "COMPLETED"
	JobStatusError      = "ERROR"
)

// Job is one unit of work submitted against a service. Parameters and results
// live in the document store; the row keeps only identity, status, the
// submission timestamp and the document references. The composite index backs
// the next-job selection query.
type Job struct {
	BaseModel
	ServiceID     string    `gorm:"column:service_id;type:varchar(36);not null;index:idx_job_queue,priority:1;comment:owning service id" json:"service_id"`
	Service       Service   `json:"-"`
	ParametersID  string    `gorm:"column:parameters_id;type:varchar(36);not null;comment:parameters document id" json:"-"`
	ResultsID     string    `gorm:"column:results_id;type:varchar(36);comment:results document id" json:"-"`
	Status        string    `gorm:"column:status;type:varchar(32);not null;default:'REGISTERED';index:idx_job_queue,priority:2;comment:job status" json:"status"`
	DateSubmitted time.Time `gorm:"column:date_submitted;type:timestamp;not null;index:idx_job_queue,priority:3;comment:submission time" json:"date_submitted"`

	// Documents joined in from the document store.
	Parameters JSONMap `gorm:"-" json:"parameters,omitempty"`
	Results    JSONMap `gorm:"-" json:"results,omitempty"`
}

// Equal reports value equality between jobs, which is identity of ids.
func (j *Job) Equal(other *Job) bool {
	if other == nil {
		return false
	}
	return j.ID == other.ID
}
