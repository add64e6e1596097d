package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator creates opaque IDs for offers and outbound references.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator emits 128-bit hex IDs, optionally prefixed ("off_…").
type RandomGenerator struct {
	prefix string
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func NewPrefixedGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{prefix: prefix}
}

func (g *RandomGenerator) NewID() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	if g.prefix == "" {
		return hex.EncodeToString(buf[:]), nil
	}
	return g.prefix + "_" + hex.EncodeToString(buf[:]), nil
}
