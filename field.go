package dossier

// FieldSpec is an entry in a record type definition: either a bare Name or a
// full Field descriptor.
type FieldSpec interface {
	descriptor() Field
}

// Name is a bare field name: a scalar field with no default.
type Name string

func (n Name) descriptor() Field {
	return NewField(string(n))
}

// Names lifts a list of bare field names into field specs.
//
//	User := dossier.MustDefine("User", dossier.Names("username", "password")...)
func Names(names ...string) []FieldSpec {
	specs := make([]FieldSpec, len(names))
	for i, n := range names {
		specs[i] = Name(n)
	}
	return specs
}

// Field describes one field of a record type. It is a read-only value; build
// it with NewField and FieldOptions.
type Field struct {
	name        string
	typ         *RecordType
	def         any
	hasDefault  bool
	hideDefault bool
	keywordOnly bool
	actions     fieldActions
}

// fieldActions holds the boundary transformations declared on a field.
type fieldActions struct {
	hash      HashAlgo
	encrypt   EncryptAlgo
	mask      MaskType
	redact    string
	hasRedact bool
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// NewField returns a descriptor for a scalar field with no default, shown in
// the textual representation and eligible for positional construction.
func NewField(name string, opts ...FieldOption) Field {
	f := Field{name: name}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func (f Field) descriptor() Field {
	return f
}

// Nested declares the field holds an instance of rt.
func Nested(rt *RecordType) FieldOption {
	return func(f *Field) {
		f.typ = rt
	}
}

// Default sets the value used when the field is omitted at construction.
// A field with a default is keyword-only.
func Default(v any) FieldOption {
	return func(f *Field) {
		f.def = v
		f.hasDefault = true
	}
}

// HideDefault omits the field from the textual representation while it
// equals its default.
func HideDefault() FieldOption {
	return func(f *Field) {
		f.hideDefault = true
	}
}

// KeywordOnly makes the field ineligible for positional construction.
func KeywordOnly() FieldOption {
	return func(f *Field) {
		f.keywordOnly = true
	}
}

// Hash hashes the field on Receive.
func Hash(algo HashAlgo) FieldOption {
	return func(f *Field) {
		f.actions.hash = algo
	}
}

// Encrypt encrypts the field on Store and decrypts it on Load.
func Encrypt(algo EncryptAlgo) FieldOption {
	return func(f *Field) {
		f.actions.encrypt = algo
	}
}

// Mask masks the field on Send.
func Mask(mt MaskType) FieldOption {
	return func(f *Field) {
		f.actions.mask = mt
	}
}

// Redact replaces the field with replacement on Send.
func Redact(replacement string) FieldOption {
	return func(f *Field) {
		f.actions.redact = replacement
		f.actions.hasRedact = true
	}
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// Type returns the nested record type, or nil for scalar fields.
func (f Field) Type() *RecordType { return f.typ }

// Default returns the default value and whether one is configured.
func (f Field) Default() (any, bool) { return f.def, f.hasDefault }

// HasDefault reports whether the field has a default value.
func (f Field) HasDefault() bool { return f.hasDefault }

// ShowDefault reports whether the field is rendered while equal to its default.
func (f Field) ShowDefault() bool { return !f.hideDefault }

// KeywordOnly reports whether the field can only be supplied by keyword.
// Fields with defaults are always keyword-only.
func (f Field) KeywordOnly() bool { return f.keywordOnly || f.hasDefault }

// Positional reports whether the field may be supplied positionally.
func (f Field) Positional() bool { return !f.KeywordOnly() }
