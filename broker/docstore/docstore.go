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

// Package docstore persists the JSON documents referenced from relational
// rows: job parameters, job results and the two service schemas. Documents
// are keyed by opaque ids so large blobs never burden the relational index.
package docstore

import (
	"context"
	"fmt"

	"github.com/TopChef/TopChef-sub000/broker/models"
)

// Namespace prefixes every document key.
const Namespace = "documents"

// Store is the document store contract. Get and Delete return a
// tcerrors.NotFoundError when the id is absent.
type Store interface {
	Put(ctx context.Context, id string, content models.JSONMap) error
	Get(ctx context.Context, id string) (models.JSONMap, error)
	Delete(ctx context.Context, id string) error
}

// MakeDocumentKey builds the storage key for a document id.
func MakeDocumentKey(id string) string {
	return fmt.Sprintf("topchef:%s:%s", Namespace, id)
}
