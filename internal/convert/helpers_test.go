package convert

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agetab/internal/authz"
	"agetab/internal/document"
	"agetab/internal/logging"
	"agetab/internal/model"
	"agetab/internal/profile"
	"agetab/internal/schema"
)

const testSchemaYAML = `
classes:
  - name: Entity
    abstract: true
  - name: Sample
    parent: Entity
  - name: Aliquot
    parent: Sample
  - name: Protocol
    parent: Entity
attributes:
  - name: Name
  - name: Active
    type: GUESS
  - name: Amount
    type: GUESS
  - name: Unit
  - name: Notes
    type: TEXT
  - name: Count
    type: INTEGER
  - name: Weight
    type: REAL
  - name: Data
    type: FILE
  - name: UsedProtocol
    target: Protocol
  - name: Measure
    abstract: true
relations:
  - name: partOf
    domain: Sample
    range: Sample
    inverse: hasPart
  - name: hasPart
  - name: follows
    domain: Protocol
    range: Protocol
`

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()

	s, err := schema.Parse([]byte(testSchemaYAML))
	require.NoError(t, err)

	return s
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = logging.Discard()

	return cfg
}

func permissiveConfig() Config {
	cfg := testConfig()
	cfg.Permissions = authz.AllowAll

	return cfg
}

// convertYAML parses src and converts it against a fresh test schema.
func convertYAML(t *testing.T, src string, cfg Config) (*Result, error) {
	t.Helper()

	return convertWith(t, testSchema(t), src, cfg)
}

func convertWith(t *testing.T, s *schema.Schema, src string, cfg Config) (*Result, error) {
	t.Helper()

	prof := cfg.Profile
	if prof == nil {
		prof = profile.Default()
	}

	doc, err := document.Parse([]byte(src), prof)
	require.NoError(t, err)

	return NewConverter(s, cfg).Convert(doc, nil)
}

// mustConvert converts src and fails the test on any error.
func mustConvert(t *testing.T, src string, cfg Config) *Result {
	t.Helper()

	res, err := convertYAML(t, src, cfg)
	require.NoError(t, err)
	require.NotNil(t, res)

	return res
}

// object returns the emitted object with the given id.
func object(t *testing.T, m *model.Module, id string) *model.Object {
	t.Helper()

	for _, o := range m.Objects() {
		if o.ID == id {
			return o
		}
	}

	require.Failf(t, "object not found", "no emitted object %q", id)

	return nil
}

// attrsNamed returns the attributes of o whose class has the given name.
func attrsNamed(o model.Attributed, name string) []*model.Attribute {
	var out []*model.Attribute

	for _, a := range o.Attributes() {
		if a.Class.Class.Name == name {
			out = append(out, a)
		}
	}

	return out
}

func relationsNamed(o *model.Object, name string) []*model.Relation {
	var out []*model.Relation

	for _, r := range o.Relations() {
		if r.Class.Class.Name == name {
			out = append(out, r)
		}
	}

	return out
}

func mustParse(t *testing.T, src string) *document.Document {
	t.Helper()

	doc, err := document.Parse([]byte(src), nil)
	require.NoError(t, err)

	return doc
}
