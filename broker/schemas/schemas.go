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

// Package schemas wraps the JSON Schema draft-04 engine. Both functions are
// pure over their inputs.
package schemas

import (
	"github.com/xeipuuv/gojsonschema"

	"github.com/TopChef/TopChef-sub000/internal/tcerrors"
)

// CheckSchema verifies that schema is itself well-formed JSON Schema. The
// field name is carried into the error for client display.
func CheckSchema(field string, schema map[string]any) error {
	if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema)); err != nil {
		return &tcerrors.InvalidSchemaError{Field: field, Err: err}
	}
	return nil
}

// Validate checks instance against schema. A nil return means the instance is
// valid; a SchemaValidationError carries the validator's ordered failure list.
// The error return is reserved for a schema that cannot be compiled at all.
func Validate(schema, instance map[string]any) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(instance))
	if err != nil {
		return &tcerrors.InvalidSchemaError{Field: "schema", Err: err}
	}

	if result.Valid() {
		return nil
	}

	verrs := make([]tcerrors.ValidationError, 0, len(result.Errors()))
	for _, resultError := range result.Errors() {
		verrs = append(verrs, tcerrors.ValidationError{
			Field:       resultError.Field(),
			Type:        resultError.Type(),
			Description: resultError.Description(),
		})
	}

	return &tcerrors.SchemaValidationError{Errors: verrs}
}
