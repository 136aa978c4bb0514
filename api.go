// Package dossier defines named record types from lists of field
// descriptors and builds immutable, comparable records from them.
//
// A record type is declared once with Define. Fields are positional unless
// they carry a default or are marked keyword-only; a field may also hold an
// instance of another record type.
//
//	Profile := dossier.MustDefine("Profile", dossier.Names("bio")...)
//	User := dossier.MustDefine("User",
//	    dossier.Name("username"),
//	    dossier.NewField("profile", dossier.Nested(Profile)),
//	    dossier.NewField("password", dossier.Default("password1"), dossier.HideDefault()),
//	)
//
//	p, _ := Profile.New("gopher")
//	u, _ := User.New("bob", p)
//	fmt.Println(u) // User('bob', Profile('gopher'))
//
// # Conversions
//
// Records convert to and from ordered mappings keyed by camelCase field
// names (ToMapping, FromMapping), to and from JSON text (Serialize,
// Deserialize), and to and from flat sequences of scalar leaves (Flatten,
// Unflatten). Encode and Decode run the mapping form through any Codec:
//
//   - json - JSON encoding (application/json)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//
// # Boundaries
//
// Fields may declare transformations applied when a record crosses a
// system boundary. A Processor binds a record type to a codec and applies
// them:
//
//	Receive  hash      (Hash)
//	Load     decrypt   (Encrypt)
//	Store    encrypt   (Encrypt)
//	Send     mask      (Mask), redact (Redact)
//
// Hashers and maskers are registered automatically. Encryptors need keys:
//
//	proc, _ := dossier.NewProcessor(User, json.New(),
//	    dossier.WithEncryptor(dossier.EncryptAES, enc),
//	)
//
// # Go Types
//
// Bind derives a record type from a Go struct using `dossier` tags and
// converts between the struct and records.
package dossier

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
