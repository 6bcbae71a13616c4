// main.go
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

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/localnerve/lessonsync/internal/logger"
	"github.com/localnerve/lessonsync/internal/server"
	"github.com/localnerve/lessonsync/internal/services"
	"github.com/localnerve/lessonsync/internal/store"
	"github.com/localnerve/lessonsync/internal/testdb"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var port string
	flag.StringVar(&port, "serve", "", "also run the API on this port against the container")
	flag.Parse()

	usage := `
Run a MariaDB testcontainer for the lessonsync database store.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-serve PORT]

ENV_FILE_PATH: path to the .env file, read for DB_IMAGE (default mariadb:11)
PORT:          run the API in-process against the container

example
  testcontainers -f /path/to/something/.env -serve 3000
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mariadb:11"
	}

	ctx := context.Background()
	mariadb, err := testdb.StartMariaDB(ctx, image)
	if err != nil {
		log.Fatalf("Failed to create test container: %v\n", err)
	}
	defer func() {
		if err := mariadb.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate MariaDB: %v\n", err)
		}
	}()

	fmt.Println("# point a lessonsync server at the container:")
	for _, kv := range mariadb.Env() {
		fmt.Println(kv)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	if port != "" {
		go serve(mariadb, port)
	}

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test container...\n", sig)
}

// serve runs the API against the container until the process exits
func serve(mariadb *testdb.MariaDB, port string) {
	lg, err := logger.New("dev")
	if err != nil {
		log.Printf("Failed to create logger: %v\n", err)
		return
	}

	var st *store.Store
	for i := 0; i < 30; i++ {
		if st, _, err = store.Open(mariadb.Config()); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		log.Printf("Failed to open database store: %v\n", err)
		return
	}

	app := server.New(services.New(st), lg, server.Options{AccessLog: true, Swagger: true})
	lg.Info("Starting server", "port", port)
	if err := app.Listen(":" + port); err != nil {
		log.Printf("Server stopped: %v\n", err)
	}
}
