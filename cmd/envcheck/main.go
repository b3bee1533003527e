// envcheck prints which deployment environment variables are set,
// without revealing their values.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var keys = []string{
	"CONFIG_PATH",
	"DB_HOST",
	"DB_USER",
	"DB_PASSWORD",
	"DB_NAME",
	"DATABASE_URL",
	"MEILISEARCH_HOST",
	"MEILISEARCH_API_KEY",
	"JWT_SECRET",
	"GOOGLE_CLIENT_ID",
	"GOOGLE_CLIENT_SECRET",
	"GOOGLE_REDIRECT_URL",
}

func main() {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded .env")
	}

	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			fmt.Printf("  %-22s set (%d chars)\n", key, len(value))
		} else {
			fmt.Printf("  %-22s NOT SET\n", key)
		}
	}
}
