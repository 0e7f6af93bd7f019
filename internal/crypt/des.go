package crypt

import "crypto/des" //nolint:gosec // required by the legacy format

// DecryptA decrypts data in place with cipher A.
// The last len(data)%8 bytes are not touched.
func DecryptA(data []byte) {
	full := len(data) - len(data)%des.BlockSize
	for off := 0; off < full; off += des.BlockSize {
		blockA.Decrypt(data[off:off+des.BlockSize], data[off:off+des.BlockSize])
	}
}

// EncryptA encrypts data in place with cipher A.
// The last len(data)%8 bytes are not touched.
func EncryptA(data []byte) {
	full := len(data) - len(data)%des.BlockSize
	for off := 0; off < full; off += des.BlockSize {
		blockA.Encrypt(data[off:off+des.BlockSize], data[off:off+des.BlockSize])
	}
}
