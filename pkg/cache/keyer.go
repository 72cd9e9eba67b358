package cache

import "strings"

// ResultKeyOpts holds every option that changes an unsampled paraphrase set.
type ResultKeyOpts struct {
	Methods         []string `json:"methods"`
	Nested          string   `json:"nested"`
	MaxCombinations int      `json:"max_combinations"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey returns the key for the paraphrase set of the tree whose
	// canonical string hashes to treeHash.
	ResultKey(treeHash string, opts ResultKeyOpts) string
}

// DefaultKeyer produces keys of the form "result:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(treeHash string, opts ResultKeyOpts) string {
	return hashKey("result", treeHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix. The pipeline scopes keys by build
// version so a new release never reads results computed by an old one.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
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
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey generates a prefixed result key.
func (k *ScopedKeyer) ResultKey(treeHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(treeHash, opts)
}

// VersionPrefix turns a build version into a key prefix, e.g. "v1.2.0:".
func VersionPrefix(version string) string {
	return strings.ReplaceAll(version, ":", "_") + ":"
}
