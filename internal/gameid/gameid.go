// Package gameid generates match identifiers: UUIDv7 values written as 26
// characters of Crockford base32, so IDs sort by creation time.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Length is the number of characters in an ID
const Length = 26

// Crockford's base32, in ascending byte order so encoded IDs sort like the
// underlying bytes
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource is the subset of *rand.Rand the generator needs
type RandSource interface {
	IntN(n int) int
}

// Generator produces IDs from an injected clock and random source. A nil
// RandSource uses crypto/rand.
type Generator struct {
	rand RandSource
	now  func() time.Time
}

// NewGenerator creates a generator. now defaults to time.Now.
func NewGenerator(rand RandSource, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{rand: rand, now: now}
}

// Generate creates an ID using the wall clock and crypto/rand
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates a new ID
func (g *Generator) Generate() string {
	return encode(g.uuid())
}

func (g *Generator) uuid() [16]byte {
	var id [16]byte

	// 48-bit millisecond timestamp
	ms := g.now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("gameid: reading random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}

// encode writes the 128 bits as 26 five-bit digits, padding two zero bits in
// front so the first digit is at most '7'.
func encode(id [16]byte) string {
	out := make([]byte, Length)
	for i := range out {
		var v byte
		for j := 0; j < 5; j++ {
			v <<= 1
			bit := i*5 + j - 2
			if bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Validate checks that id has the shape of a generated ID
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("match ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("match ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
