package pak

import (
	"strings"

	"github.com/meigma/pak/internal/crypt"
)

// Plaintext header lengths of markup payloads.
const (
	spzHeaderLen    = 5
	markupHeaderLen = 4
)

// textHeaderLen returns the plaintext header length for markup payloads,
// or 0 when name is not a markup payload.
func textHeaderLen(name string) int {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".spz"):
		return spzHeaderLen
	case strings.HasSuffix(lower, ".xml"), strings.HasSuffix(lower, ".json"):
		return markupHeaderLen
	case strings.HasSuffix(name, ".ui"):
		// The client matches ".ui" case-sensitively.
		return markupHeaderLen
	default:
		return 0
	}
}

// decodeText restores a markup payload. The header stays plaintext except
// that a leading 'X' becomes '<'; the body is decrypted with cipher B.
func decodeText(data []byte, headerLen int) []byte {
	if len(data) < headerLen {
		return data
	}
	out := make([]byte, 0, len(data))
	out = append(out, data[:headerLen]...)
	if out[0] == 'X' {
		out[0] = '<'
	}
	return append(out, crypt.DecryptB(data[headerLen:])...)
}
