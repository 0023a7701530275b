package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer builds cache keys. The CLI and the server share the default keyer;
// [ScopedKeyer] adds a namespace in front of it.
type Keyer interface {
	// SolveKey identifies the layout solved from a scene.
	SolveKey(sceneHash string, opts SolveKeyOpts) string

	// GraphKey identifies a rendering of the dependency graph built for a scene.
	GraphKey(sceneHash string, opts GraphKeyOpts) string

	// ArtifactKey identifies a rendered layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// SolveKeyOpts holds the solve options that change the result.
type SolveKeyOpts struct {
	OptimizeWrap bool `json:"optimize_wrap"`
	Trace        bool `json:"trace"`
}

// GraphKeyOpts holds the options of a dependency-graph rendering.
type GraphKeyOpts struct {
	Format       string `json:"format"`
	Values       bool   `json:"values"`
	OptimizeWrap bool   `json:"optimize_wrap"`
}

// ArtifactKeyOpts holds the options of a rendered layout.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	Labels     bool    `json:"labels"`
	Guidelines bool    `json:"guidelines"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolveKey returns "solve:<sha256>".
func (DefaultKeyer) SolveKey(sceneHash string, opts SolveKeyOpts) string {
	return hashKey("solve", sceneHash, opts)
}

// GraphKey returns "graph:<sha256>".
func (DefaultKeyer) GraphKey(sceneHash string, opts GraphKeyOpts) string {
	return hashKey("graph", sceneHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}

// hashKey returns "<prefix>:<sha256 of the JSON-encoded parts>".
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	// Options are plain structs of bools, strings and numbers; encoding cannot fail.
	_ = json.NewEncoder(h).Encode(parts)
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. Scenes and layouts are hashed with it
// before they are used in keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
