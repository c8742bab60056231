package storage

import (
	"regexp"
	"strings"

	"github.com/cityfix/cityfix-api/config"
)

var schemePrefix = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// Resolver projects stored media references to absolute URLs at read time.
// The projection is never persisted, so switching backends re-resolves every
// existing report.
type Resolver struct {
	storageType string
	baseURL     string
}

// NewResolver builds a resolver for the configured backend and public base URL
func NewResolver(storageType, baseURL string) *Resolver {
	return &Resolver{storageType: storageType, baseURL: strings.TrimRight(baseURL, "/")}
}

// Resolve returns the client-usable URL for ref
func (r *Resolver) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	if schemePrefix.MatchString(ref) {
		return ref
	}
	if r.storageType == config.StorageCloudinary {
		return ref
	}
	// only the filename survives, directories in the reference never reach the URL
	filename := ref[strings.LastIndex(ref, "/")+1:]
	return r.baseURL + "/" + UploadsPath + "/" + filename
}

// ResolveAll resolves every reference preserving order, never returning nil
func (r *Resolver) ResolveAll(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, r.Resolve(ref))
	}
	return out
}
