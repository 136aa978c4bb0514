package dossier

// EncryptAlgo names an encryption algorithm for the Encrypt field action.
type EncryptAlgo string

const (
	// EncryptAES uses AES-GCM symmetric encryption.
	EncryptAES EncryptAlgo = "aes"

	// EncryptRSA uses RSA-OAEP asymmetric encryption.
	EncryptRSA EncryptAlgo = "rsa"
)

// HashAlgo names a hashing algorithm for the Hash field action.
type HashAlgo string

const (
	// HashArgon2 uses Argon2id for password hashing (salted, slow).
	HashArgon2 HashAlgo = "argon2"

	// HashBcrypt uses bcrypt for password hashing (salted, slow).
	HashBcrypt HashAlgo = "bcrypt"

	// HashSHA256 uses SHA-256 for deterministic hashing.
	// Use for fingerprinting, NOT for passwords.
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 uses SHA-512 for deterministic hashing.
	// Use for fingerprinting, NOT for passwords.
	HashSHA512 HashAlgo = "sha512"
)

var validEncryptAlgos = map[EncryptAlgo]bool{
	EncryptAES: true,
	EncryptRSA: true,
}

var validHashAlgos = map[HashAlgo]bool{
	HashArgon2: true,
	HashBcrypt: true,
	HashSHA256: true,
	HashSHA512: true,
}

var validMaskTypes = map[MaskType]bool{
	MaskSSN:   true,
	MaskEmail: true,
	MaskPhone: true,
	MaskCard:  true,
	MaskName:  true,
}

// IsValidEncryptAlgo returns true if the algorithm is a known encryption algorithm.
func IsValidEncryptAlgo(algo EncryptAlgo) bool {
	return validEncryptAlgos[algo]
}

// IsValidHashAlgo returns true if the algorithm is a known hash algorithm.
func IsValidHashAlgo(algo HashAlgo) bool {
	return validHashAlgos[algo]
}

// IsValidMaskType returns true if the type is a known mask type.
func IsValidMaskType(mt MaskType) bool {
	return validMaskTypes[mt]
}

// validate checks every action declared on the field.
func (a fieldActions) validate(field string) error {
	if a.hash != "" && !IsValidHashAlgo(a.hash) {
		return newConfigError(ErrInvalidAction, string(a.hash), field)
	}
	if a.encrypt != "" && !IsValidEncryptAlgo(a.encrypt) {
		return newConfigError(ErrInvalidAction, string(a.encrypt), field)
	}
	if a.mask != "" && !IsValidMaskType(a.mask) {
		return newConfigError(ErrInvalidAction, string(a.mask), field)
	}
	return nil
}
