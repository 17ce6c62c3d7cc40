package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Usage: migrations [-dir path] up|down|<name>
//
// "up" applies every *.up.sql file in name order, "down" every *.down.sql file
// in reverse order, anything else the single file matching <name>.sql.
func main() {
	dir := flag.String("dir", filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations"), "migrations directory")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("a migration name, up or down is required.")
	}
	target := flag.Arg(0)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	files, err := migrationFiles(*dir, target)
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(*dir, name))
		if err != nil {
			log.Fatal(err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("Failed to execute SQL file %s: %v", name, err)
		}
		log.Printf("Executed %s", name)
	}

	fmt.Println("Migrations executed successfully.")
}

func migrationFiles(basePath, target string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	switch target {
	case "up":
		return filterSuffix(names, ".up.sql"), nil
	case "down":
		down := filterSuffix(names, ".down.sql")
		slices.Reverse(down)
		return down, nil
	}

	regex, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(target)))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	for _, name := range names {
		if regex.MatchString(name) {
			return []string{name}, nil
		}
	}
	return nil, fmt.Errorf("migration file %q not found", target)
}

func filterSuffix(names []string, suffix string) []string {
	var out []string
	for _, name := range names {
		if strings.HasSuffix(name, suffix) {
			out = append(out, name)
		}
	}
	return out
}

func dbConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"),
	)
}
