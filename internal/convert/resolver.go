package convert

import (
	"log/slog"

	"agetab/internal/authz"
	"agetab/internal/diagnostic"
	"agetab/internal/document"
	"agetab/internal/model"
)

type classKey struct {
	name   string
	custom bool
}

// classResolver resolves block headers to classes. Successful resolutions
// are memoized for the remainder of the pass.
type classResolver struct {
	store    Store
	perms    authz.Oracle
	implicit bool
	resolved map[classKey]*model.Class
}

func newClassResolver(store Store, perms authz.Oracle, implicitCustom bool) *classResolver {
	return &classResolver{
		store:    store,
		perms:    perms,
		implicit: implicitCustom,
		resolved: make(map[classKey]*model.Class),
	}
}

// resolve returns the class a block header names. Warnings about implicit
// custom classes are written to log and diags.
func (r *classResolver) resolve(
	hdr *document.ClassReference,
	log *diagnostic.Log,
	diags *diagnostic.Diagnostics,
) (*model.Class, error) {
	key := classKey{name: hdr.Name, custom: hdr.Custom}
	if c, ok := r.resolved[key]; ok {
		return c, nil
	}

	c, err := r.lookup(hdr, hdr.Custom, log, diags)
	if err != nil {
		return nil, err
	}

	r.resolved[key] = c

	return c, nil
}

func (r *classResolver) lookup(
	hdr *document.ClassReference,
	custom bool,
	log *diagnostic.Log,
	diags *diagnostic.Diagnostics,
) (*model.Class, error) {
	if custom {
		if r.perms.Permission(authz.DefineCustomClass) != authz.Allow {
			return nil, schemaErrorf(CodePermissionDenied, hdr.Row, hdr.Col,
				"custom classes are not allowed within this context")
		}

		var parent *model.Class

		if hdr.Parent != "" {
			parent = r.store.DefinedClass(hdr.Parent)
			if parent == nil {
				err := schemaErrorf(CodeUnknownParent, hdr.Row, hdr.Col,
					"defined class %q (used as superclass) is not found", hdr.Parent)
				err.Suggestions = r.store.SuggestClasses(hdr.Parent)

				return nil, err
			}
		}

		return r.store.GetOrCreateCustomClass(hdr.Name, parent), nil
	}

	cls := r.store.DefinedClass(hdr.Name)
	if cls == nil {
		if r.implicit {
			msg := "defined class '" + hdr.Name + "' not found, generating custom class"
			log.Logf(slog.LevelWarn, "%s. Row: %d Col: %d", msg, hdr.Row, hdr.Col)
			diags.AddWarning(CodeImplicitCustomClass, msg, hdr.Name, position(hdr.Row, hdr.Col))

			return r.lookup(hdr, true, log, diags)
		}

		err := schemaErrorf(CodeUnknownClass, hdr.Row, hdr.Col, "defined class %q not found", hdr.Name)
		err.Suggestions = r.store.SuggestClasses(hdr.Name)

		return nil, err
	}

	if cls.Abstract {
		return nil, schemaErrorf(CodeAbstractClass, hdr.Row, hdr.Col,
			"abstract class instantiation %q", hdr.Name)
	}

	return cls, nil
}
