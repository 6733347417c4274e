package document

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"agetab/internal/common"
	"agetab/internal/profile"
)

type yamlFile struct {
	Blocks []yamlBlock `yaml:"blocks"`
}

type yamlBlock struct {
	Class   *yamlHeader   `yaml:"class"`
	Columns []*yamlHeader `yaml:"columns"`
	Rows    []yamlRow     `yaml:"rows"`
}

type yamlHeader struct {
	Name       string            `yaml:"name"`
	Custom     bool              `yaml:"custom,omitempty"`
	Parent     string            `yaml:"parent,omitempty"`
	Type       string            `yaml:"type,omitempty"`
	Range      *yamlHeader       `yaml:"range,omitempty"`
	Target     *yamlHeader       `yaml:"target,omitempty"`
	Qualifiers []*yamlHeader     `yaml:"qualifiers,omitempty"`
	Embedded   *yamlHeader       `yaml:"embedded,omitempty"`
	Flags      map[string]string `yaml:"flags,omitempty"`
}

// UnmarshalYAML accepts a plain name, "{Name}" for a custom name, or the
// full mapping form.
func (h *yamlHeader) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		name := strings.TrimSpace(node.Value)
		if strings.HasPrefix(name, "{") && strings.HasSuffix(name, "}") {
			h.Name = strings.TrimSpace(name[1 : len(name)-1])
			h.Custom = true
		} else {
			h.Name = name
		}

		return nil
	}

	type plain yamlHeader

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*h = yamlHeader(p)

	return nil
}

type yamlRow struct {
	ID        *string                `yaml:"id"`
	Prototype bool                   `yaml:"prototype"`
	Cells     []common.StringOrArray `yaml:"cells"`
}

// LoadFile reads a YAML document file.
func LoadFile(path string, prof *profile.Profile) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document file %s: %w", path, err)
	}

	return Parse(data, prof)
}

// Parse builds a document from YAML. Source positions are those of an
// equivalent vertical sheet: each block starts with its header row, each row
// spans as many sheet rows as its longest cell, and blocks are separated by
// one blank row. The class column is column 0.
func Parse(data []byte, prof *profile.Profile) (*Document, error) {
	if prof == nil {
		prof = profile.Default()
	}

	var f yamlFile

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse document YAML: %w", err)
	}

	doc := &Document{}
	sheetRow := 1

	var errs []error

	for bi, yb := range f.Blocks {
		if yb.Class == nil || yb.Class.Name == "" {
			errs = append(errs, fmt.Errorf("block %d: missing class header", bi+1))
			continue
		}

		blk := &Block{Header: yb.Class.toReference(sheetRow, 0)}

		for ci, yc := range yb.Columns {
			if yc == nil {
				blk.Columns = append(blk.Columns, nil)
				continue
			}

			if yc.Name == "" {
				errs = append(errs, fmt.Errorf("block %d column %d: header without a name", bi+1, ci+1))
			}

			blk.Columns = append(blk.Columns, yc.toReference(sheetRow, ci+1))
		}

		def := prof.ForHeader(blk.Header.Name, blk.Header.Custom)
		sheetRow++

		for ri, yr := range yb.Rows {
			if len(yr.Cells) > len(blk.Columns) {
				errs = append(errs, fmt.Errorf("block %d row %d: %d cells for %d columns",
					bi+1, ri+1, len(yr.Cells), len(blk.Columns)))
			}

			row := &Row{Row: sheetRow, Prototype: yr.Prototype}

			if yr.ID != nil {
				row.ID = strings.TrimSpace(*yr.ID)
				row.IDDefined = row.ID != ""
			}

			if row.IDDefined && row.ID == def.PrototypeObjectID {
				row.Prototype = true
			}

			height := 1
			row.Cells = make([][]*Value, len(blk.Columns))

			for ci := 0; ci < len(yr.Cells) && ci < len(blk.Columns); ci++ {
				for ln, text := range yr.Cells[ci] {
					row.Cells[ci] = append(row.Cells[ci], &Value{Text: text, Row: sheetRow + ln, Col: ci + 1})
				}

				height = max(height, len(yr.Cells[ci]))
			}

			blk.Rows = append(blk.Rows, row)
			sheetRow += height
		}

		doc.Blocks = append(doc.Blocks, blk)
		sheetRow++
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	return doc, nil
}

func (h *yamlHeader) toReference(row, col int) *ClassReference {
	if h == nil {
		return nil
	}

	r := &ClassReference{
		Name:   h.Name,
		Custom: h.Custom,
		Row:    row,
		Col:    col,
		Parent: h.Parent,
		Range:  h.Range.toReference(row, col),
		Target: h.Target.toReference(row, col),
	}

	if len(h.Flags) > 0 || h.Type != "" {
		r.Flags = make(map[string]string, len(h.Flags)+1)
		for k, v := range h.Flags {
			r.Flags[k] = v
		}

		if h.Type != "" {
			r.Flags[TypeFlag] = h.Type
		}
	}

	for _, q := range h.Qualifiers {
		if q == nil {
			continue
		}

		r.Qualifiers = append(r.Qualifiers, q.toReference(row, col))
	}

	r.Embedded = h.Embedded.toReference(row, col)
	r.Original = r.String()

	return r
}
