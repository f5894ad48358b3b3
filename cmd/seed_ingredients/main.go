package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/plateshare/backend/config"
	"github.com/plateshare/backend/internal/logger"
)

// Bulk-loads the ingredient catalog from a CSV of
// name,measurement_unit rows using COPY. Rows whose name already
// exists in the catalog are skipped.
func main() {
	csvPath := flag.String("file", "data/ingredients.csv", "path to the ingredients CSV")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		boot := logger.L()
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log := logger.L()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	file, err := os.Open(*csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("file", *csvPath).Msg("failed to open CSV")
	}
	defer file.Close()

	existing := make(map[string]struct{})
	rows, err := db.Query("SELECT name FROM ingredients")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read existing catalog")
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Fatal().Err(err).Msg("failed to scan catalog row")
		}
		existing[name] = struct{}{}
	}
	rows.Close()

	tx, err := db.Begin()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to begin transaction")
	}
	stmt, err := tx.Prepare(pq.CopyIn("ingredients", "id", "created_at", "name", "measurement_unit"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare COPY")
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2
	var loaded, skipped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal().Err(err).Msg("failed to read CSV row")
		}
		name, unit := record[0], record[1]
		if _, ok := existing[name]; ok {
			skipped++
			continue
		}
		existing[name] = struct{}{}
		if _, err := stmt.Exec(uuid.New(), time.Now(), name, unit); err != nil {
			log.Fatal().Err(err).Str("name", name).Msg("failed to queue row")
		}
		loaded++
	}

	if _, err := stmt.Exec(); err != nil {
		log.Fatal().Err(err).Msg("COPY failed")
	}
	if err := stmt.Close(); err != nil {
		log.Fatal().Err(err).Msg("failed to close COPY statement")
	}
	if err := tx.Commit(); err != nil {
		log.Fatal().Err(err).Msg("failed to commit")
	}

	log.Info().Int("loaded", loaded).Int("skipped", skipped).Msg("ingredient catalog seeded")
}
