// Package catalog loads the product data and page templates once at startup
// and holds them read-only for the lifetime of the process.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Default file names inside the template directory.
const (
	OverviewTemplate = "template-overview.html"
	CardTemplate     = "template-card.html"
	ProductTemplate  = "template-product.html"
)

var (
	// ErrNotArray is returned when the data file is not a JSON array of objects.
	ErrNotArray = errors.New("data file must be a JSON array of objects")
	// ErrEmptyTemplate is returned when a template file has no content.
	ErrEmptyTemplate = errors.New("template is empty")
)

// Record is one product entry. Keys are the JSON field names.
type Record map[string]any

// Paths names the files a Catalog is loaded from.
type Paths struct {
	DataFile    string
	TemplateDir string
}

// Catalog is the immutable startup context shared by all request handlers.
type Catalog struct {
	records  []Record
	raw      []byte
	overview string
	card     string
	product  string
}

// Load reads the data file and the three templates in order.
// The first failure stops the load.
func Load(p Paths) (*Catalog, error) {
	raw, err := os.ReadFile(p.DataFile)
	if err != nil {
		return nil, fmt.Errorf("read data file %s: %w", p.DataFile, err)
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, fmt.Errorf("decode data file %s: %w", p.DataFile, err)
	}

	c := &Catalog{records: records, raw: raw}

	targets := []struct {
		name string
		dst  *string
	}{
		{OverviewTemplate, &c.overview},
		{CardTemplate, &c.card},
		{ProductTemplate, &c.product},
	}
	for _, t := range targets {
		path := filepath.Join(p.TemplateDir, t.name)
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", path, err)
		}
		if len(bytes.TrimSpace(b)) == 0 {
			return nil, fmt.Errorf("read template %s: %w", path, ErrEmptyTemplate)
		}
		*t.dst = string(b)
	}

	log.Printf("[catalog] loaded %d records from %s", len(records), p.DataFile)
	return c, nil
}

// New builds a Catalog from values already in memory.
func New(raw []byte, overview, card, product string) (*Catalog, error) {
	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		records:  records,
		raw:      append([]byte(nil), raw...),
		overview: overview,
		card:     card,
		product:  product,
	}, nil
}

func decodeRecords(raw []byte) ([]Record, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotArray
		}
		return nil, err
	}
	if items == nil {
		// a bare null decodes without error
		return nil, ErrNotArray
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		var rec Record
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, ErrNotArray)
		}
		if rec == nil {
			return nil, fmt.Errorf("record %d: %w", i, ErrNotArray)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Records returns the records in load order. The slice is a copy.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Record returns the record at index i.
func (c *Catalog) Record(i int) (Record, bool) {
	if i < 0 || i >= len(c.records) {
		return nil, false
	}
	return c.records[i], true
}

// RawJSON returns the data file bytes exactly as read.
func (c *Catalog) RawJSON() []byte { return c.raw }

func (c *Catalog) OverviewTemplate() string { return c.overview }
func (c *Catalog) CardTemplate() string     { return c.card }
func (c *Catalog) ProductTemplate() string  { return c.product }
