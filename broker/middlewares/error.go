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

package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	logger "github.com/TopChef/TopChef-sub000/internal/tclog"
	"github.com/TopChef/TopChef-sub000/internal/tcerrors"
)

type ErrorResponse struct {
	Message string                     `json:"message,omitempty"`
	Errors  []tcerrors.ValidationError `json:"errors,omitempty"`
}

// Error translates broker errors set on the gin context into responses.
// Validation and not-found conditions are expected and recoverable by the
// caller; storage failures surface as 500 after the core rolled back.
func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		err := c.Errors.Last()
		if err == nil {
			return
		}

		var notFoundErr *tcerrors.NotFoundError
		if errors.As(err.Err, &notFoundErr) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Message: notFoundErr.Error(),
			})
			return
		}

		var validationErr *tcerrors.SchemaValidationError
		if errors.As(err.Err, &validationErr) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Message: "schema validation failed",
				Errors:  validationErr.Errors,
			})
			return
		}

		var invalidSchemaErr *tcerrors.InvalidSchemaError
		if errors.As(err.Err, &invalidSchemaErr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: invalidSchemaErr.Error(),
			})
			return
		}

		if errors.Is(err.Err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Message: http.StatusText(http.StatusNotFound),
			})
			return
		}

		logger.Errorf("request failed: %s", err.Err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: http.StatusText(http.StatusInternalServerError),
		})
	}
}
