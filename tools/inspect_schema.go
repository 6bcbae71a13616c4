package main

import (
	"fmt"
	"log"
	"os"

	"github.com/localnerve/lessonsync/internal/config"
	"github.com/localnerve/lessonsync/internal/database"
)

// Prints the DDL gorm creates for the documents table. DB_TYPE defaults to
// the cgo sqlite3 driver here; any configured dialect works.
func main() {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite3"
	}
	cfg := &config.Config{DBType: dbType, DBDatabase: ":memory:", DBConnectionLimit: 1}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	// Auto-migrate to see what GORM creates
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	if dbType != "sqlite" && dbType != "sqlite3" {
		cols, err := db.Migrator().ColumnTypes("documents")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("=== Table: documents ===")
		for _, col := range cols {
			fmt.Printf("%s %s\n", col.Name(), col.DatabaseTypeName())
		}
		return
	}

	// Get the schema
	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table'").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var schema string
		db.Raw("SELECT sql FROM sqlite_master WHERE name = ?", table).Scan(&schema)
		fmt.Println(schema)
	}
}
