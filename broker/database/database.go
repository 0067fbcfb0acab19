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

// Package database constructs the relational and document store clients from
// configuration. The lifecycle of both handles is owned by the caller.
package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/TopChef/TopChef-sub000/broker/config"
	"github.com/TopChef/TopChef-sub000/broker/models"
)

type Database struct {
	DB *gorm.DB
}

func New(cfg *config.Config) (*Database, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Type {
	case config.DatabaseTypeMysql:
		db, err = newMysql(cfg.Database.Mysql)
	case config.DatabaseTypePostgres:
		db, err = newPostgres(cfg.Database.Postgres)
	case config.DatabaseTypeSqlite:
		db, err = newSqlite(cfg.Database.Sqlite)
	default:
		return nil, fmt.Errorf("unknown database type %q", cfg.Database.Type)
	}
	if err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &Database{DB: db}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Service{},
		&models.Job{},
	)
}
