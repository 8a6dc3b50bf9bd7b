package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer generates cache keys for the pipeline's stages.
// Implementations must be deterministic: the same inputs always produce the
// same key.
type Keyer interface {
	// ImageKey generates a key for a content-addressed input image.
	ImageKey(imageHash string) string

	// PackKey generates a key for a packing result. imageHash identifies the
	// input image; opts captures every parameter that changes the output.
	PackKey(imageHash string, opts PackKeyOpts) string

	// ArtifactKey generates a key for an exported artifact derived from a
	// packing result.
	ArtifactKey(packHash string, opts ArtifactKeyOpts) string
}

// PackKeyOpts captures the packing parameters that affect the result.
type PackKeyOpts struct {
	Radius     int    `json:"radius"`
	Clearance  int    `json:"clearance"`
	Protrusion int    `json:"protrusion"`
	MaxIter    int    `json:"max_iter"`
	SitesHash  string `json:"sites_hash,omitempty"` // set when explicit sites were supplied
}

// ArtifactKeyOpts captures export parameters that affect the artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Summary bool   `json:"summary"`
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ImageKey generates a key for an input image.
func (k *DefaultKeyer) ImageKey(imageHash string) string {
	return "image:" + imageHash
}

// PackKey generates a key for a packing result.
func (k *DefaultKeyer) PackKey(imageHash string, opts PackKeyOpts) string {
	return hashKey("pack", imageHash, opts)
}

// ArtifactKey generates a key for an exported artifact.
func (k *DefaultKeyer) ArtifactKey(packHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", packHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or tenants
// sharing a backend get disjoint key spaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ImageKey generates a prefixed image key.
func (k *ScopedKeyer) ImageKey(imageHash string) string {
	return k.prefix + k.inner.ImageKey(imageHash)
}

// PackKey generates a prefixed packing-result key.
func (k *ScopedKeyer) PackKey(imageHash string, opts PackKeyOpts) string {
	return k.prefix + k.inner.PackKey(imageHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(packHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(packHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
