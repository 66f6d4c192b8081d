package models

import (
	"path"
	"strings"
)

// Policy is the validation policy consulted once per run. It is plain data so
// the extension set and root list can change per deployment without touching
// the validator.
type Policy struct {
	// AllowedRoots lists the path prefixes a change may target, e.g. "src/".
	AllowedRoots []string `yaml:"allowed_roots" json:"allowed_roots"`

	// SensitiveExtensions lists file-type suffixes that require the issue
	// body itself to mention the extension before a change is accepted.
	SensitiveExtensions []string `yaml:"sensitive_extensions" json:"sensitive_extensions"`

	// ExemptImportPaths exempts import-style pseudo-paths (bare module names
	// and "@scope/..." specifiers) from the root-prefix check.
	ExemptImportPaths bool `yaml:"exempt_import_paths" json:"exempt_import_paths"`
}

// DefaultPolicy returns the policy used when no configuration overrides it.
func DefaultPolicy() Policy {
	return Policy{
		AllowedRoots:        []string{"src/"},
		SensitiveExtensions: []string{".css", ".scss", ".json", ".md", ".env"},
		ExemptImportPaths:   true,
	}
}

// UnderAllowedRoot reports whether p falls under one of the allowed roots.
func (pol Policy) UnderAllowedRoot(p string) bool {
	for _, root := range pol.AllowedRoots {
		if strings.HasPrefix(p, root) {
			return true
		}
	}
	return false
}

// IsSensitive reports whether p ends in one of the sensitive extensions, and
// returns the matched extension in lowercase.
func (pol Policy) IsSensitive(p string) (string, bool) {
	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return "", false
	}
	for _, s := range pol.SensitiveExtensions {
		if ext == strings.ToLower(s) {
			return ext, true
		}
	}
	return "", false
}

// IsImportPath reports whether p looks like an import specifier rather than a
// repository file path: a scoped "@org/pkg" reference or an extensionless bare
// module name. A name carrying a file extension is a filesystem path, never a
// specifier, and stays subject to the root-prefix check.
func IsImportPath(p string) bool {
	if strings.HasPrefix(p, "@") {
		return true
	}
	return !strings.Contains(p, "/") && path.Ext(p) == ""
}
