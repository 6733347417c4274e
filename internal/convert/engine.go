package convert

import (
	"fmt"
	"log/slog"

	"agetab/internal/authz"
	"agetab/internal/diagnostic"
	"agetab/internal/document"
	"agetab/internal/model"
	"agetab/internal/profile"
)

// Result is a successful conversion.
type Result struct {
	Module *model.Module
	// Diagnostics holds the warnings and infos of the run.
	Diagnostics diagnostic.Diagnostics
	// InferredTypes maps every GUESS attribute class to its resolved type.
	InferredTypes map[*model.AttributeClass]model.DataType
	// InverseRelations counts the synthesized inverse relations.
	InverseRelations int
}

// Converter converts documents against a schema store.
type Converter struct {
	store  Store
	config Config
}

// NewConverter creates a Converter. Nil fields of config take their
// defaults.
func NewConverter(store Store, config Config) *Converter {
	if config.Profile == nil {
		config.Profile = profile.Default()
	}

	if config.Permissions == nil {
		config.Permissions = authz.Static{}
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Converter{store: store, config: config}
}

// pass is the state of one conversion.
type pass struct {
	c        *Converter
	module   *model.Module
	reg      *objectRegistry
	resolver *classResolver
	factory  *converterFactory
	diags    diagnostic.Diagnostics
	embedded int
}

type resolvedBlock struct {
	blk *document.Block
	cls *model.Class
	ref *model.ClassRef
	def profile.Definition
}

// Convert runs the conversion of doc. Progress and problems are written to
// log, which may be nil. On any error the result is nil and the error is a
// *Failure describing every problem found.
func (c *Converter) Convert(doc *document.Document, log *diagnostic.Log) (*Result, error) {
	if log == nil {
		log = diagnostic.NewLog("Converting document", c.config.Logger)
	}

	p := &pass{c: c, module: model.NewModule(), embedded: 1}
	p.reg = newObjectRegistry(p.module)
	p.resolver = newClassResolver(c.store, c.config.Permissions, c.config.Profile.Common.AllowImplicitCustomClasses)
	p.factory = &converterFactory{
		store:    c.store,
		perms:    c.config.Permissions,
		reg:      p.reg,
		module:   p.module,
		embedded: &p.embedded,
	}

	blocks := p.createObjects(doc, log)

	for _, rb := range blocks {
		p.convertBlock(rb, log)
	}

	if p.diags.HasErrors() {
		log.Logf(slog.LevelError, "Conversion failed with %d error(s)", len(p.diags.Errors))
		return nil, &Failure{Diagnostics: p.diags}
	}

	for _, o := range p.module.AllObjects() {
		o.SortValues()
	}

	res := &Result{Module: p.module, Diagnostics: p.diags}
	res.InferredTypes = inferTypes(p.module)
	res.InverseRelations = imputeInverses(p.module)

	if c.config.IDGenerator != nil {
		n := AssignIDs(p.module, c.config.IDGenerator)
		log.Logf(slog.LevelDebug, "Assigned %d generated id(s)", n)
	}

	c.config.Logger.Debug("conversion finished",
		"objects", len(p.module.Objects()),
		"inferred_types", len(res.InferredTypes),
		"inverse_relations", res.InverseRelations)

	return res, nil
}

// report records err against block and logs it.
func (p *pass) report(log *diagnostic.Log, block string, err error) {
	code, suggestions := errorCode(err)
	log.Log(slog.LevelError, err.Error())
	p.diags.AddCause(code, block, "", err, suggestions...)
}

// createObjects resolves the class of every block and pre-creates the
// objects of every row, so references may point at objects defined later
// in the document.
func (p *pass) createObjects(doc *document.Document, log *diagnostic.Log) []resolvedBlock {
	var blocks []resolvedBlock

	for _, blk := range doc.Blocks {
		hdr := blk.Header
		blkLog := log.Branch(fmt.Sprintf("Processing block for class %s at line: %d", hdr.Name, hdr.Row))

		if len(hdr.Qualifiers) > 0 {
			msg := "class reference must not be qualified"
			blkLog.Logf(slog.LevelWarn, "%s. Row: %d Col: %d", msg, hdr.Row, hdr.Col)
			p.diags.AddWarning(CodeQualifiedClassHeader, msg, hdr.Name, position(hdr.Row, hdr.Col))
		}

		cls, err := p.resolver.resolve(hdr, blkLog, &p.diags)
		if err != nil {
			p.report(blkLog, hdr.Name, err)
			continue
		}

		def := p.c.config.Profile.ForHeader(cls.Name, cls.Custom)
		rb := resolvedBlock{
			blk: blk,
			cls: cls,
			ref: &model.ClassRef{Class: cls, Order: hdr.Row, Original: hdr.Original},
			def: def,
		}

		p.reg.register(cls)

		for _, row := range blk.Rows {
			if row.Prototype {
				if !def.ResetPrototype {
					p.reg.getOrCreatePrototype(rb.ref, def.PrototypeObjectID, row)
				}

				continue
			}

			p.reg.getOrCreate(rb.ref, row)
		}

		blocks = append(blocks, rb)
	}

	return blocks
}

// convertBlock builds the converters of a block and converts its rows.
func (p *pass) convertBlock(rb resolvedBlock, log *diagnostic.Log) {
	hdr := rb.blk.Header

	cnvLog := log.Branch(fmt.Sprintf("Creating value converters for class '%s'. Block at: %d", rb.cls, hdr.Row))

	convs := p.factory.build(rb.blk, rb.cls, rb.def, func(err error) {
		p.report(cnvLog, rb.cls.Name, err)
	})

	if rb.def.ResetPrototype {
		p.reg.dropPrototype(rb.cls)
	}

	valLog := log.Branch(fmt.Sprintf("Converting values for class '%s'. Block at: %d", rb.cls.Name, hdr.Row))

	for _, row := range rb.blk.Rows {
		objLog := valLog.Branch("Processing object: " + rowLabel(row))

		var obj *model.Object

		switch {
		case row.Prototype && rb.def.ResetPrototype:
			obj = p.reg.newPrototype(rb.ref, rb.def.PrototypeObjectID, row)
		case row.Prototype:
			obj = p.reg.prototype(rb.cls)
		default:
			obj = p.reg.lookup(rb.cls, row)
		}

		p.convertRow(row, obj, convs, rb.cls.Name, objLog)

		if !row.Prototype {
			p.module.Emit(obj)
		}
	}
}

// convertRow resets every converter against obj, seeds obj from the class
// prototype and feeds the converters line by line. A row is as high as its
// longest cell; shorter cells yield nil values.
func (p *pass) convertRow(
	row *document.Row,
	obj *model.Object,
	convs []columnConverter,
	block string,
	log *diagnostic.Log,
) {
	for _, cnv := range convs {
		cnv.resetObject(obj)
	}

	if !row.Prototype {
		if proto := p.reg.prototype(obj.Class.Class); proto != nil {
			applyPrototype(obj, proto)
		}
	}

	height := 0
	for col := range convs {
		height = max(height, len(row.Values(col)))
	}

	for ln := 0; ln < height; ln++ {
		for col, cnv := range convs {
			cnv.resetLine(ln)

			var v *document.Value
			if vals := row.Values(col); ln < len(vals) {
				v = vals[ln]
			}

			if err := cnv.convert(v); err != nil {
				p.report(log, block, err)
			}
		}
	}
}

func rowLabel(row *document.Row) string {
	if row.IDDefined {
		return row.ID
	}

	return fmt.Sprintf("<anonymous at row %d>", row.Row)
}
