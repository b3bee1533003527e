// dbcheck is a connection diagnostic: it pings the database given by
// DATABASE_URL (Postgres) and prints row counts for the CRM tables.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var tables = []string{
	"agents",
	"agent_settings",
	"contacts",
	"deals",
	"tasks",
	"appointments",
	"properties",
	"property_images",
	"communications",
	"activities",
}

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open connection: %v", err)
	}
	defer db.Close()

	start := time.Now()
	if err := db.Ping(); err != nil {
		log.Fatalf("Ping failed: %v", err)
	}
	fmt.Printf("Connected in %s\n", time.Since(start).Round(time.Millisecond))

	for _, table := range tables {
		var n int64
		// Table names come from the fixed list above, not user input
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			fmt.Printf("  %-20s error: %v\n", table, err)
			continue
		}
		fmt.Printf("  %-20s %d rows\n", table, n)
	}
}
