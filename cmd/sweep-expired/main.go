// Command sweep-expired marks overdue open decisions as expired.
//
// Reads normally expire decisions lazily on access. This sweep catches
// decisions nobody has looked at, so run it periodically (cron).
//
// Usage:
//
//	sweep-expired
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	tag, err := pool.Exec(ctx,
		"UPDATE decisions SET status = 'expired', updated_at = now() WHERE status = 'open' AND expires_at < now()",
	)
	if err != nil {
		log.Fatalf("sweep expired decisions: %v", err)
	}

	fmt.Printf("Marked %d decisions as expired.\n", tag.RowsAffected())
}
