// Package crypt implements the two fixed-key ciphers of the legacy package format.
//
// Cipher A is DES in ECB mode without padding. Only whole 8-byte blocks are
// transformed; a trailing remainder is left as-is.
//
// Cipher B is AES-128 in CBC mode without padding. A trailing remainder
// shorter than one block is XORed against the last full ciphertext block
// instead of being encrypted.
//
// Keys and IVs are constants of the format. None of the routines fail.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des" //nolint:gosec // required by the legacy format
)

var (
	keyA = []byte{0x7e, 0x21, 0x40, 0x23, 0x25, 0x5e, 0x24, 0x3c}

	keyB = []byte{0xDC, 0x84, 0x01, 0x21, 0x2A, 0x40, 0x20, 0x0A, 0xDD, 0x25, 0xB9, 0xA7, 0x0D, 0xB9, 0xC9, 0x4E}
	ivB  = []byte{0x3E, 0x09, 0x78, 0xAA, 0xC4, 0xD5, 0x30, 0x63, 0x30, 0x0C, 0x5F, 0x9A, 0x80, 0x7F, 0x22, 0x46}
)

// Block ciphers are stateless and safe to share between goroutines.
var (
	blockA = mustCipher(des.NewCipher(keyA))
	blockB = mustCipher(aes.NewCipher(keyB))
)

func mustCipher(b cipher.Block, err error) cipher.Block {
	if err != nil {
		panic("crypt: " + err.Error())
	}
	return b
}
