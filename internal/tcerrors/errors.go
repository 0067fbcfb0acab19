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

// Package tcerrors holds the broker error taxonomy. Every failure the core can
// produce is one of the typed errors below so that the HTTP boundary can map
// them to responses with errors.As.
package tcerrors

import (
	"errors"
	"fmt"
)

// NotFoundError reports a missing Service, Job or document.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NewNotFound returns a NotFoundError for the given resource kind and id.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// ValidationError is one structured JSON Schema violation. The Field is a
// JSON pointer-ish path into the instance, Type the failed keyword.
type ValidationError struct {
	Field       string `json:"field"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// SchemaValidationError reports that submitted parameters or results failed
// validation against the owning service's schema. Errors preserves the
// validator's ordering so callers can display them verbatim.
type SchemaValidationError struct {
	Errors []ValidationError
}

func (e *SchemaValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "schema validation failed"
	}
	return fmt.Sprintf("schema validation failed: %s", e.Errors[0])
}

// InvalidSchemaError reports that a schema supplied at service registration
// is not itself well-formed JSON Schema.
type InvalidSchemaError struct {
	Field string
	Err   error
}

func (e *InvalidSchemaError) Error() string {
	return fmt.Sprintf("invalid JSON schema for %s: %s", e.Field, e.Err)
}

func (e *InvalidSchemaError) Unwrap() error {
	return e.Err
}

// StorageError wraps a relational or document store failure. The operation
// that produced it has already rolled back any partial writes, so the caller
// may retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %s", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorage wraps err as a StorageError. A missing document behind a live
// row is deliberately wrapped too: it is a consistency fault of the broker,
// not a missing resource the caller asked for.
func NewStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
