package datafix

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Fingerprinter derives a deterministic digest from encoded bytes. Digests
// identify payloads (cache keys, change detection); they are not password
// hashes.
type Fingerprinter interface {
	// Fingerprint returns the hex-encoded digest of data.
	Fingerprint(data []byte) (string, error)
}

// hashFingerprinter implements Fingerprinter over a hash constructor.
type hashFingerprinter struct {
	newHash func() (hash.Hash, error)
}

func (f *hashFingerprinter) Fingerprint(data []byte) (string, error) {
	h, err := f.newHash()
	if err != nil {
		return "", err
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SHA256 returns a SHA-256 fingerprinter.
func SHA256() Fingerprinter {
	return &hashFingerprinter{newHash: func() (hash.Hash, error) {
		return sha256.New(), nil
	}}
}

// BLAKE2b returns an unkeyed BLAKE2b-256 fingerprinter.
func BLAKE2b() Fingerprinter {
	return &hashFingerprinter{newHash: func() (hash.Hash, error) {
		return blake2b.New256(nil)
	}}
}

// KeyedBLAKE2b returns a BLAKE2b-256 fingerprinter keyed with key, so that
// digests cannot be forged without it. Keys longer than 64 bytes are rejected.
func KeyedBLAKE2b(key []byte) (Fingerprinter, error) {
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("blake2b key must be at most %d bytes, got %d", blake2b.Size, len(key))
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &hashFingerprinter{newHash: func() (hash.Hash, error) {
		return blake2b.New256(k)
	}}, nil
}
