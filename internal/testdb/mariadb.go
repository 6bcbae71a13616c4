// mariadb.go
//
// A file-backed document store and offline sync service for the lessonsync learning platform
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of lessonsync.
// lessonsync is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// lessonsync is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with lessonsync.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package testdb starts throwaway MariaDB containers for integration tests
// and local development.
package testdb

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/lessonsync/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Credentials used inside the container
const (
	Database     = "lessonsync"
	User         = "lessons"
	Password     = "lessonspass"
	RootPassword = "rootpass"
)

// MariaDB is a running database container.
type MariaDB struct {
	Container testcontainers.Container
	Host      string
	Port      string
}

// StartMariaDB runs image (e.g. mariadb:11) and waits for its port.
func StartMariaDB(ctx context.Context, image string) (*MariaDB, error) {
	tcpDbPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpDbPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": RootPassword,
				"MYSQL_DATABASE":      Database,
				"MYSQL_USER":          User,
				"MYSQL_PASSWORD":      Password,
			},
			WaitingFor: wait.ForListeningPort(tcpDbPort).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start MariaDB: %w", err)
	}

	db := &MariaDB{Container: container}
	if db.Host, err = container.Host(ctx); err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, tcpDbPort)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	db.Port = port.Port()
	return db, nil
}

// Config returns a database store configuration pointing at the container.
func (m *MariaDB) Config() *config.Config {
	return &config.Config{
		StoreBackend:      config.BackendDatabase,
		DBType:            "mariadb",
		DBHost:            m.Host,
		DBPort:            m.Port,
		DBDatabase:        Database,
		DBUser:            User,
		DBPassword:        Password,
		DBConnectionLimit: 5,
		BodyLimitMB:       50,
	}
}

// Env lists the variables that point the server at the container.
func (m *MariaDB) Env() []string {
	return []string{
		"STORE_BACKEND=" + config.BackendDatabase,
		"DB_TYPE=mariadb",
		"DB_HOST=" + m.Host,
		"DB_PORT=" + m.Port,
		"DB_DATABASE=" + Database,
		"DB_USER=" + User,
		"DB_PASSWORD=" + Password,
	}
}

// Terminate stops and removes the container.
func (m *MariaDB) Terminate(ctx context.Context) error {
	return m.Container.Terminate(ctx)
}
