package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/pollhub/pollhub_api/config"
)

func main() {
	var (
		action string
		steps  int
		path   string
	)

	flag.StringVar(&action, "action", "up", "Migration action: up, down, force, version")
	flag.IntVar(&steps, "steps", 0, "Number of steps (for up/down) or target version (for force)")
	flag.StringVar(&path, "path", "migrations", "Path to the migrations directory")
	flag.Parse()

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalln("invalid configuration:", err)
	}

	db, err := sql.Open("postgres", cfg.Dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", path),
		"postgres", driver,
	)
	if err != nil {
		log.Fatal(err)
	}

	switch action {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "force":
		err = m.Force(steps)
	case "version":
		version, dirty, versionErr := m.Version()
		if versionErr != nil {
			log.Fatal(versionErr)
		}
		fmt.Printf("Version: %d, Dirty: %v\n", version, dirty)
		return
	default:
		log.Fatalf("unknown action: %s", action)
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
	}

	fmt.Println("Migration complete")
}
