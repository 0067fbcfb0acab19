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

package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TopChef/TopChef-sub000/internal/tcerrors"
)

var boundedValueSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"value": map[string]any{
			"type":    "integer",
			"minimum": 0,
			"maximum": 10,
		},
	},
}

func TestCheckSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema map[string]any
		expect func(t *testing.T, err error)
	}{
		{
			name:   "well-formed schema",
			schema: boundedValueSchema,
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name:   "trivial schema",
			schema: map[string]any{"type": "object"},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name:   "unknown primitive type",
			schema: map[string]any{"type": "integerr"},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				var invalidSchemaErr *tcerrors.InvalidSchemaError
				assert.True(errors.As(err, &invalidSchemaErr))
				assert.Equal("job_registration_schema", invalidSchemaErr.Field)
			},
		},
		{
			name: "required must be an array of strings",
			schema: map[string]any{
				"type":     "object",
				"required": "value",
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				var invalidSchemaErr *tcerrors.InvalidSchemaError
				assert.True(errors.As(err, &invalidSchemaErr))
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, CheckSchema("job_registration_schema", tc.schema))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		schema   map[string]any
		instance map[string]any
		expect   func(t *testing.T, err error)
	}{
		{
			name:     "value inside bounds",
			schema:   boundedValueSchema,
			instance: map[string]any{"value": 5},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name:     "value above maximum",
			schema:   boundedValueSchema,
			instance: map[string]any{"value": 11},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				var validationErr *tcerrors.SchemaValidationError
				assert.True(errors.As(err, &validationErr))
				assert.NotEmpty(validationErr.Errors)
				assert.Equal("value", validationErr.Errors[0].Field)
			},
		},
		{
			name: "missing required property",
			schema: map[string]any{
				"type":     "object",
				"required": []any{"name"},
				"properties": map[string]any{
					"name": map[string]any{"type": "string"},
				},
			},
			instance: map[string]any{},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				var validationErr *tcerrors.SchemaValidationError
				assert.True(errors.As(err, &validationErr))
				assert.NotEmpty(validationErr.Errors)
				assert.Equal("required", validationErr.Errors[0].Type)
			},
		},
		{
			name: "nested object and array",
			schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"samples": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"weight": map[string]any{"type": "number"},
							},
							"required": []any{"weight"},
						},
					},
				},
			},
			instance: map[string]any{
				"samples": []any{
					map[string]any{"weight": 1.5},
					map[string]any{},
				},
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				var validationErr *tcerrors.SchemaValidationError
				assert.True(errors.As(err, &validationErr))
				assert.NotEmpty(validationErr.Errors)
			},
		},
		{
			name: "enum violation",
			schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"mode": map[string]any{
						"type": "string",
						"enum": []any{"fast", "precise"},
					},
				},
			},
			instance: map[string]any{"mode": "sloppy"},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				var validationErr *tcerrors.SchemaValidationError
				assert.True(errors.As(err, &validationErr))
				assert.NotEmpty(validationErr.Errors)
			},
		},
		{
			name: "multiple violations reported in order",
			schema: map[string]any{
				"type":     "object",
				"required": []any{"a", "b"},
				"properties": map[string]any{
					"a": map[string]any{"type": "string"},
					"b": map[string]any{"type": "string"},
				},
			},
			instance: map[string]any{},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				var validationErr *tcerrors.SchemaValidationError
				assert.True(errors.As(err, &validationErr))
				assert.Len(validationErr.Errors, 2)
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, Validate(tc.schema, tc.instance))
		})
	}
}
