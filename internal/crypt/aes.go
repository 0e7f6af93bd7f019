package crypt

import (
	"crypto/aes"
	"crypto/cipher"
)

// DecryptB returns the cipher B plaintext of src.
//
// The full-block prefix is CBC-decrypted. The remaining len(src)%16 bytes are
// recovered by XOR with the last ciphertext block of src. With no full block
// the remainder is returned unchanged.
func DecryptB(src []byte) []byte {
	out := make([]byte, len(src))
	full := len(src) - len(src)%aes.BlockSize
	copy(out[full:], src[full:])
	if full == 0 {
		return out
	}

	xorTail(out[full:], src[full-aes.BlockSize:full])
	cipher.NewCBCDecrypter(blockB, ivB).CryptBlocks(out[:full], src[:full])
	return out
}

// EncryptB returns the cipher B ciphertext of src. It is the inverse of DecryptB.
func EncryptB(src []byte) []byte {
	out := make([]byte, len(src))
	full := len(src) - len(src)%aes.BlockSize
	copy(out[full:], src[full:])
	if full == 0 {
		return out
	}

	cipher.NewCBCEncrypter(blockB, ivB).CryptBlocks(out[:full], src[:full])
	xorTail(out[full:], out[full-aes.BlockSize:full])
	return out
}

func xorTail(tail, last []byte) {
	for i := range tail {
		tail[i] ^= last[i]
	}
}
