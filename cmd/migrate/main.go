// cmd/migrate/main.go
// Copies an existing MySQL race archive into the configured store.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/racetracker?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate [-reset]
//
// -reset drops the destination tables before copying.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	_ "github.com/go-sql-driver/mysql"

	"github.com/padraicbc/racetracker/config"
	bundb "github.com/padraicbc/racetracker/db"
)

func main() {
	reset := flag.Bool("reset", false, "drop destination tables before copying")
	flag.Parse()

	ctx := context.Background()

	cfg := config.Load()

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/racetracker?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- destination store ---
	dst, err := bundb.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer dst.Close()
	log.Printf("connected to %s", cfg.DBDriver)

	if err := prepare(ctx, dst, *reset); err != nil {
		log.Fatal(err)
	}

	if err := run(ctx, myDB, dst, log.Printf); err != nil {
		log.Fatal(err)
	}
	log.Println("migration complete")
}
