package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"chosenoffset.com/cattown/internal/save"
)

func main() {
	out := flag.String("out", "docs/save.schema.json", "where to write the schema")
	flag.Parse()

	if err := write(*out); err != nil {
		log.Fatalf("Failed to write schema: %v", err)
	}
	log.Printf("Wrote %s", *out)
}

func write(path string) error {
	data, err := json.MarshalIndent(save.Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
