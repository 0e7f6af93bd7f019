// Package pak extracts assets from the legacy client's monolithic package files.
//
// A package entry is described by a [Record] resolved through an [Index]:
// the package file, a byte offset, on-disk and decompressed sizes, a
// compression kind, and a cipher flag. [Extractor.Extract] reads the entry
// with a positioned read, decrypts it, decompresses it, and deobfuscates the
// plaintext header of markup payloads.
//
// # Quick Start
//
//	idx := pak.NewMapIndex()
//	idx.Add("Tile", pak.Record{Path: "Tile.pak", Name: "4.til", Offset: 0, Size: 1153})
//
//	e := pak.New(pak.WithIndex(idx))
//	defer e.Close()
//
//	payload, err := e.Unpack("Tile", "4.til")
//
// # Degraded Mode
//
// When the registry has no decoder for an entry's compression kind, Extract
// returns a zero-filled buffer of the declared size and sets
// [Payload.Degraded] instead of failing. Callers that render many assets can
// proceed; callers that need real data check the flag.
//
// Package files are opened read-only and shared; concurrent extractions at
// different offsets are safe.
package pak
