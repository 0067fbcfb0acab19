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

package config

import (
	"errors"
	"fmt"
	"time"
)

// Relational database backends.
const (
	DatabaseTypeMysql    = "mysql"
	DatabaseTypePostgres = "postgres"
	DatabaseTypeSqlite   = "sqlite"
)

// Document store backends.
const (
	DocStoreTypeRedis  = "redis"
	DocStoreTypeMemory = "memory"
)

type Config struct {
	Server   *ServerConfig   `yaml:"server" mapstructure:"server"`
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	DocStore *DocStoreConfig `yaml:"docStore" mapstructure:"docStore"`
	Cache    *CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Log      *LogConfig      `yaml:"log" mapstructure:"log"`
	Verbose  bool            `yaml:"verbose" mapstructure:"verbose"`
}

type ServerConfig struct {
	// Listen address of the REST API.
	Addr string `yaml:"addr" mapstructure:"addr"`

	// Grace period for in-flight requests at shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" mapstructure:"shutdownTimeout"`
}

type DatabaseConfig struct {
	Type     string          `yaml:"type" mapstructure:"type"`
	Mysql    *MysqlConfig    `yaml:"mysql" mapstructure:"mysql"`
	Postgres *PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
	Sqlite   *SqliteConfig   `yaml:"sqlite" mapstructure:"sqlite"`
	Redis    *RedisConfig    `yaml:"redis" mapstructure:"redis"`
}

type MysqlConfig struct {
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
}

type PostgresConfig struct {
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	SSLMode  string `yaml:"sslMode" mapstructure:"sslMode"`
}

type SqliteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type RedisConfig struct {
	Addrs    []string `yaml:"addrs" mapstructure:"addrs"`
	Username string   `yaml:"username" mapstructure:"username"`
	Password string   `yaml:"password" mapstructure:"password"`
	DB       int      `yaml:"db" mapstructure:"db"`
}

type DocStoreConfig struct {
	Type string `yaml:"type" mapstructure:"type"`
}

type CacheConfig struct {
	Redis *RedisCacheConfig `yaml:"redis" mapstructure:"redis"`
	Local *LocalCacheConfig `yaml:"local" mapstructure:"local"`
}

type RedisCacheConfig struct {
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type LocalCacheConfig struct {
	Size int           `yaml:"size" mapstructure:"size"`
	TTL  time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type LogConfig struct {
	// Dir is the rotating log file directory. Empty keeps console logging.
	Dir      string `yaml:"dir" mapstructure:"dir"`
	Compress bool   `yaml:"compress" mapstructure:"compress"`
}

// New returns the default configuration: a local sqlite database and an
// in-memory document store, which run without any external dependency.
func New() *Config {
	return &Config{
		Server: &ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 30 * time.Second,
		},
		Database: &DatabaseConfig{
			Type: DatabaseTypeSqlite,
			Sqlite: &SqliteConfig{
				Path: "topchef.db",
			},
			Redis: &RedisConfig{
				Addrs: []string{"127.0.0.1:6379"},
			},
		},
		DocStore: &DocStoreConfig{
			Type: DocStoreTypeMemory,
		},
		Cache: &CacheConfig{
			Redis: &RedisCacheConfig{
				TTL: 30 * time.Minute,
			},
			Local: &LocalCacheConfig{
				Size: 10000,
				TTL:  3 * time.Minute,
			},
		},
		Log: &LogConfig{},
	}
}

func (cfg *Config) Valid() error {
	if cfg.Server == nil || cfg.Server.Addr == "" {
		return errors.New("server config error: addr is null")
	}

	if cfg.Database == nil {
		return errors.New("database config error: database is null")
	}

	switch cfg.Database.Type {
	case DatabaseTypeMysql:
		if cfg.Database.Mysql == nil {
			return errors.New("database config error: mysql is null")
		}
		if cfg.Database.Mysql.User == "" || cfg.Database.Mysql.Host == "" || cfg.Database.Mysql.DBName == "" {
			return errors.New("database config error: mysql user, host and dbname are required")
		}
	case DatabaseTypePostgres:
		if cfg.Database.Postgres == nil {
			return errors.New("database config error: postgres is null")
		}
		if cfg.Database.Postgres.User == "" || cfg.Database.Postgres.Host == "" || cfg.Database.Postgres.DBName == "" {
			return errors.New("database config error: postgres user, host and dbname are required")
		}
	case DatabaseTypeSqlite:
		if cfg.Database.Sqlite == nil || cfg.Database.Sqlite.Path == "" {
			return errors.New("database config error: sqlite path is null")
		}
	default:
		return fmt.Errorf("database config error: unknown type %q", cfg.Database.Type)
	}

	switch cfg.DocStore.Type {
	case DocStoreTypeRedis:
		if cfg.Database.Redis == nil || len(cfg.Database.Redis.Addrs) == 0 {
			return errors.New("docStore config error: redis addrs is null")
		}
	case DocStoreTypeMemory:
	default:
		return fmt.Errorf("docStore config error: unknown type %q", cfg.DocStore.Type)
	}

	return nil
}
