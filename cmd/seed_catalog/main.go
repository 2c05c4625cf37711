// seed_catalog turns a legacy catalog export (semicolon separated, UTF-8 or ISO-8859-1)
// into an idempotent SQL seed for components_info and components_list.
//
// Usage: go run ./cmd/seed_catalog [-out file.sql] catalog.csv
// Default output: internal/infrastructure/postgres/seeds/catalog.sql, applied by the API at
// startup whenever its content changes.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	out := flag.String("out", "", "output SQL file")
	flag.Parse()

	csvPath := "catalog.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	in, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open CSV: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	rows, err := readCatalog(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := *out
	if outPath == "" {
		outPath = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "seeds", "catalog.sql")
	}
	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	variants, err := writeSeed(f, rows, filepath.Base(csvPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "write SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s: %d components, %d variants\n", outPath, len(rows), variants)
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
