package convert

import (
	"log/slog"

	"github.com/google/uuid"

	"agetab/internal/authz"
	"agetab/internal/model"
	"agetab/internal/profile"
)

// Config holds the collaborators and options of a Converter.
type Config struct {
	// Profile is the syntax profile. Nil means profile.Default().
	Profile *profile.Profile
	// Permissions gates schema extension. Nil denies everything.
	Permissions authz.Oracle
	// Logger receives the diagnostic log. Nil means slog.Default().
	Logger *slog.Logger
	// IDGenerator assigns ids to id-less objects after a successful
	// conversion. Nil leaves those ids empty.
	IDGenerator IDGenerator
}

// DefaultConfig returns a configuration with the default profile, no
// permissions and no id generation.
func DefaultConfig() Config {
	return Config{
		Profile:     profile.Default(),
		Permissions: authz.Static{},
	}
}

// IDGenerator mints ids for objects whose row had none.
type IDGenerator interface {
	NewID(cls *model.Class) string
}

// UUIDGenerator prefixes a random UUID with the class name.
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID(cls *model.Class) string {
	return cls.Name + "-" + uuid.NewString()
}

// AssignIDs gives every emitted object without an id one from gen.
func AssignIDs(m *model.Module, gen IDGenerator) int {
	n := 0

	for _, o := range m.Objects() {
		if o.HasGeneratedID() {
			o.ID = gen.NewID(o.Class.Class)
			n++
		}
	}

	return n
}
