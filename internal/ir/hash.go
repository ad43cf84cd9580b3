package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainAutomaton = "chartrie/automaton/v1"
	DomainPattern   = "chartrie/pattern/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// AutomatonHash computes the content hash of a snapshot. Two snapshots of
// structurally identical graphs hash equal regardless of the pattern text
// they were compiled from.
func AutomatonHash(a *Automaton) (string, error) {
	if a == nil {
		return "", fmt.Errorf("AutomatonHash: nil automaton")
	}
	shape := *a
	shape.Pattern = ""

	canonical, err := MarshalCanonical(shape)
	if err != nil {
		return "", fmt.Errorf("AutomatonHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainAutomaton, canonical), nil
}

// PatternHash computes the content hash of a catalog entry.
func PatternHash(spec PatternSpec) (string, error) {
	canonical, err := MarshalCanonical(spec)
	if err != nil {
		return "", fmt.Errorf("PatternHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainPattern, canonical), nil
}

// MustAutomatonHash is like AutomatonHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustAutomatonHash(a *Automaton) string {
	h, err := AutomatonHash(a)
	if err != nil {
		panic(err)
	}
	return h
}
