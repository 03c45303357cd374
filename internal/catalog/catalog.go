// Package catalog holds the static registry of analysis dimensions and the
// mutable selection set that drives which dimensions participate in a query.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	stderrors "echo3/internal/common/errors"
)

// Dimension is one selectable analysis lens. Entries are created at process
// start from static configuration and never mutated.
type Dimension struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Badge       string   `json:"badge"`
	TruthLevel  string   `json:"truthLevel"`
	DataSource  string   `json:"dataSource"`
	Features    []string `json:"features"`
}

// catalogSchema validates the dimension catalog file before it is trusted.
const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["dimensions"],
  "properties": {
    "dimensions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "title", "description", "dataSource", "features"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "subtitle": {"type": "string"},
          "description": {"type": "string", "minLength": 1},
          "badge": {"type": "string"},
          "truthLevel": {"type": "string"},
          "dataSource": {"type": "string", "minLength": 1},
          "features": {
            "type": "array",
            "items": {"type": "string"}
          }
        }
      }
    }
  }
}`

// Catalog is an immutable ordered registry of dimensions.
type Catalog struct {
	dims []Dimension
	byID map[string]int
}

type catalogFile struct {
	Dimensions []Dimension `json:"dimensions"`
}

// Load reads and schema-validates the catalog file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse builds a catalog from raw JSON, validating it against the embedded
// schema first.
func Parse(raw []byte) (*Catalog, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(catalogSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, stderrors.NewCatalogInvalidError(err.Error())
	}
	if !result.Valid() {
		details := ""
		for _, e := range result.Errors() {
			details += e.String() + "; "
		}
		return nil, stderrors.NewCatalogInvalidError(details)
	}

	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, stderrors.NewCatalogInvalidError(err.Error())
	}

	c := &Catalog{byID: make(map[string]int, len(file.Dimensions))}
	for _, d := range file.Dimensions {
		if _, dup := c.byID[d.ID]; dup {
			return nil, stderrors.NewCatalogInvalidError(fmt.Sprintf("duplicate dimension id %q", d.ID))
		}
		c.byID[d.ID] = len(c.dims)
		c.dims = append(c.dims, d)
	}
	return c, nil
}

// Get returns the catalog entry for an id.
func (c *Catalog) Get(id string) (Dimension, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Dimension{}, false
	}
	return c.dims[i], true
}

// Has reports whether the catalog knows the id.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Dimensions returns the ordered entries. The returned slice is a copy.
func (c *Catalog) Dimensions() []Dimension {
	out := make([]Dimension, len(c.dims))
	copy(out, c.dims)
	return out
}

// Len returns the number of registered dimensions.
func (c *Catalog) Len() int {
	return len(c.dims)
}

// Titles maps a list of ids to their titles, skipping unknown ids.
func (c *Catalog) Titles(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if d, ok := c.Get(id); ok {
			out = append(out, d.Title)
		}
	}
	return out
}

// DataSources maps a list of ids to their data source labels, skipping
// unknown ids.
func (c *Catalog) DataSources(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if d, ok := c.Get(id); ok {
			out = append(out, d.DataSource)
		}
	}
	return out
}
