package pak

import "github.com/meigma/pak/internal/paktype"

// Compression identifies the compression applied to a package entry.
type Compression = paktype.Compression

// Re-export compression constants.
const (
	CompressionNone   = paktype.CompressionNone
	CompressionZlib   = paktype.CompressionZlib
	CompressionBrotli = paktype.CompressionBrotli
)

// ParseCompression returns the compression kind with the given name.
var ParseCompression = paktype.ParseCompression

// Record locates one logical asset inside a package file.
// Records are values and are never modified after lookup.
type Record struct {
	// Path is the package file holding the entry.
	Path string

	// Name is the logical file name, e.g. "4.til" or "zone3-c.xml".
	Name string

	// Offset is the byte offset of the entry in the package file.
	Offset uint64

	// Size is the decompressed size of the entry.
	Size uint64

	// CompressedSize is the on-disk size of a compressed entry.
	// Zero means the entry is stored uncompressed in Size bytes.
	CompressedSize uint64

	// Compression is the compression kind of a compressed entry.
	Compression Compression

	// Encrypted marks entries stored under cipher A.
	Encrypted bool
}

// Compressed reports whether the entry must be decompressed after reading.
func (r Record) Compressed() bool {
	return r.CompressedSize > 0 && r.Compression != CompressionNone
}

// DiskSize returns the number of bytes the entry occupies in the package file.
func (r Record) DiskSize() uint64 {
	if r.CompressedSize > 0 {
		return r.CompressedSize
	}
	return r.Size
}

// Payload is the plaintext of an extracted entry.
type Payload struct {
	// Data is owned by the caller.
	Data []byte

	// Degraded is set when no decoder was available for the entry's
	// compression kind and Data is a zero-filled buffer of the declared size.
	Degraded bool
}
