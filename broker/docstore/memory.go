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

package docstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/TopChef/TopChef-sub000/broker/models"
	"github.com/TopChef/TopChef-sub000/internal/tcerrors"
)

// MemoryStore is an in-process document store for single-node deployments
// without redis, and for tests. Documents are stored as encoded bytes so that
// callers never share mutable state with the store.
type MemoryStore struct {
	mu        sync.RWMutex
	documents map[string][]byte
}

// NewMemory returns an empty in-memory document store.
func NewMemory() *MemoryStore {
	return &MemoryStore{documents: map[string][]byte{}}
}

func (s *MemoryStore) Put(ctx context.Context, id string, content models.JSONMap) error {
	b, err := json.Marshal(content)
	if err != nil {
		return tcerrors.NewStorage("marshal document", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[MakeDocumentKey(id)] = b
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (models.JSONMap, error) {
	s.mu.RLock()
	b, ok := s.documents[MakeDocumentKey(id)]
	s.mu.RUnlock()
	if !ok {
		return nil, tcerrors.NewNotFound("document", id)
	}

	var content models.JSONMap
	if err := json.Unmarshal(b, &content); err != nil {
		return nil, tcerrors.NewStorage("unmarshal document", err)
	}

	return content, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := MakeDocumentKey(id)
	if _, ok := s.documents[key]; !ok {
		return tcerrors.NewNotFound("document", id)
	}
	delete(s.documents, key)
	return nil
}

// Len reports the number of stored documents.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}
