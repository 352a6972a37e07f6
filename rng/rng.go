// Package rng derives the winning number for a round from host-supplied
// entropy. The draw is a pure function of (block height, block time, caller):
// identical inputs always produce the identical number, which is what replay
// and audit need.
//
// This is NOT unpredictable. Anyone who can observe or influence block height,
// block time or the closing caller before submission can compute the draw in
// advance. Do not treat it as adversarially safe randomness.
package rng

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"time"

	"golang.org/x/crypto/chacha20"
)

// domainSalt separates this generator's hash inputs from any other use of the
// same primitives.
const domainSalt = "entropy"

// Wheel is the size of the draw range.
const Wheel = 38

// seed is the fixed 32-byte base seed: SHA-256 over the base64 encoding of
// the domain salt.
func seed() [32]byte {
	return sha256.Sum256([]byte(base64.StdEncoding.EncodeToString([]byte(domainSalt))))
}

// entropy concatenates the byte encodings of the host inputs in a fixed
// order: big-endian height, big-endian block time in nanoseconds, caller
// identity bytes, then the base seed.
func entropy(height uint64, blockTime time.Time, caller string) []byte {
	base := seed()
	buf := make([]byte, 0, 16+len(caller)+len(base))
	buf = binary.BigEndian.AppendUint64(buf, height)
	buf = binary.BigEndian.AppendUint64(buf, uint64(blockTime.UnixNano()))
	buf = append(buf, caller...)
	buf = append(buf, base[:]...)
	return buf
}

// Draw returns the winning wheel number in [0, Wheel). The base seed and the
// entropy buffer are compressed into a ChaCha20 key; the cipher's first four
// keystream bytes, read little-endian, are reduced modulo the wheel size.
func Draw(height uint64, blockTime time.Time, caller string) (uint32, error) {
	base := seed()
	material := entropy(height, blockTime, caller)

	h := sha256.New()
	h.Write(base[:])
	h.Write(material)
	key := h.Sum(nil)

	cipher, err := chacha20.NewUnauthenticatedCipher(key, make([]byte, chacha20.NonceSize))
	if err != nil {
		return 0, err
	}
	var stream [4]byte
	cipher.XORKeyStream(stream[:], stream[:])
	return binary.LittleEndian.Uint32(stream[:]) % Wheel, nil
}
