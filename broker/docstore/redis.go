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
	"errors"

	"github.com/go-redis/redis/v8"

	"github.com/TopChef/TopChef-sub000/broker/models"
	"github.com/TopChef/TopChef-sub000/internal/tcerrors"
)

// RedisStore keeps documents as JSON-encoded redis values. Documents have no
// TTL; their lifecycle is owned by the referencing row.
type RedisStore struct {
	rdb redis.UniversalClient
}

// NewRedis returns a document store backed by the given redis client.
func NewRedis(rdb redis.UniversalClient) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Put(ctx context.Context, id string, content models.JSONMap) error {
	b, err := json.Marshal(content)
	if err != nil {
		return tcerrors.NewStorage("marshal document", err)
	}

	if err := s.rdb.Set(ctx, MakeDocumentKey(id), b, 0).Err(); err != nil {
		return tcerrors.NewStorage("put document", err)
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (models.JSONMap, error) {
	b, err := s.rdb.Get(ctx, MakeDocumentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, tcerrors.NewNotFound("document", id)
		}
		return nil, tcerrors.NewStorage("get document", err)
	}

	var content models.JSONMap
	if err := json.Unmarshal(b, &content); err != nil {
		return nil, tcerrors.NewStorage("unmarshal document", err)
	}

	return content, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	deleted, err := s.rdb.Del(ctx, MakeDocumentKey(id)).Result()
	if err != nil {
		return tcerrors.NewStorage("delete document", err)
	}
	if deleted == 0 {
		return tcerrors.NewNotFound("document", id)
	}

	return nil
}
