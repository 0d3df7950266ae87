package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
)

var (
	// ErrMissingVersion means the document has no version field.
	ErrMissingVersion = errors.New("save: missing version")
	// ErrMalformed means the document is not a valid save.
	ErrMalformed = errors.New("save: malformed document")
)

const (
	filePrefix = "cattown_save_"
	fileSuffix = ".json"
)

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	return nil
}

// Decode reads and validates a document. Nothing is returned unless the whole
// document is usable.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the fields every load relies on.
func (d *Document) Validate() error {
	if d.Version == "" {
		return ErrMissingVersion
	}
	if d.Player == nil {
		return fmt.Errorf("%w: no player", ErrMalformed)
	}
	if d.Level < 1 || d.XPToNextLevel < 1 {
		return fmt.Errorf("%w: level %d, threshold %d", ErrMalformed, d.Level, d.XPToNextLevel)
	}
	for i, c := range d.Chests {
		if c.Tier < 0 {
			return fmt.Errorf("%w: chest %d has tier %d", ErrMalformed, i, c.Tier)
		}
	}
	if d.IsInsideHouse && d.CurrentHouseID == "" {
		return fmt.Errorf("%w: inside a house without an id", ErrMalformed)
	}
	return nil
}

// FileName returns the name a save taken at t is written under.
func FileName(t time.Time) string {
	return filePrefix + t.Format("2006-01-02") + fileSuffix
}

// WriteFile writes doc into dir, replacing any save from the same day.
func WriteFile(dir string, doc *Document) (string, error) {
	path := filepath.Join(dir, FileName(doc.Timestamp))
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create save: %w", err)
	}
	if err := Encode(f, doc); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("replace save: %w", err)
	}
	return path, nil
}

// ReadFile decodes the save at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open save: %w", err)
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// Latest finds the most recently modified save in dir.
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("list saves: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	var found []candidate
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{path: filepath.Join(dir, name), mod: info.ModTime()})
	}
	if len(found) == 0 {
		return "", fmt.Errorf("no save in %s: %w", dir, os.ErrNotExist)
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].mod.Equal(found[j].mod) {
			return found[i].path > found[j].path
		}
		return found[i].mod.After(found[j].mod)
	})
	return found[0].path, nil
}

// Schema describes Document.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(Document))
	schema.Title = "Cat Town Save"
	schema.Description = "Snapshot written by the F5 key and read back by F9"
	return schema
}
