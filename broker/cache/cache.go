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

package cache

import (
	"fmt"
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"

	"github.com/TopChef/TopChef-sub000/broker/config"
)

const (
	// Service prefix of cache key.
	ServiceNamespace = "service"
)

// Cache is the read-through cache for service records. Jobs are never cached;
// queue selection must always observe the latest status.
type Cache struct {
	*cache.Cache
	TTL time.Duration
}

// New builds a TinyLFU + redis cache from config. A nil redis client yields a
// local-only cache.
func New(cfg *config.Config, rdb redis.UniversalClient) *Cache {
	var localCache *cache.TinyLFU
	if cfg.Cache != nil && cfg.Cache.Local != nil {
		localCache = cache.NewTinyLFU(cfg.Cache.Local.Size, cfg.Cache.Local.TTL)
	}

	ttl := 30 * time.Minute
	if cfg.Cache != nil && cfg.Cache.Redis != nil && cfg.Cache.Redis.TTL > 0 {
		ttl = cfg.Cache.Redis.TTL
	}

	return &Cache{
		Cache: cache.New(&cache.Options{
			Redis:      rdb,
			LocalCache: localCache,
		}),
		TTL: ttl,
	}
}

// MakeCacheKey builds a namespaced cache key.
func MakeCacheKey(namespace string, id string) string {
	return fmt.Sprintf("topchef:%s:%s", namespace, id)
}

// MakeServiceCacheKey builds the cache key for a service record.
func MakeServiceCacheKey(id string) string {
	return MakeCacheKey(ServiceNamespace, id)
}
