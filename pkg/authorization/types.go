// Package authorization resolves effective permissions for paths in a
// hierarchical file store.
//
// Permissions are declared in per-directory rule files (see
// pkg/ruleset) and inherited bottom-up: the directory closest to the
// path wins per permission kind, and a terminal rule file walls off
// everything declared above it. The owner of the enclosing datasite
// bypasses the rules entirely.
package authorization

import (
	"fmt"
	"sort"

	"github.com/tmcnab/aclwalk/pkg/ruleset"
)

// Permission identifies a permission kind.
type Permission int

const (
	Read Permission = iota
	Write
	Admin
)

// Kinds lists all permission kinds in resolution order.
var Kinds = []Permission{Read, Write, Admin}

func (p Permission) String() string {
	switch p {
	case Read:
		return "read"
	case Write:
		return "write"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("permission(%d)", int(p))
	}
}

// ParsePermission converts a permission name to its kind.
func ParsePermission(s string) (Permission, error) {
	switch s {
	case "read":
		return Read, nil
	case "write":
		return Write, nil
	case "admin":
		return Admin, nil
	default:
		return 0, fmt.Errorf("unknown permission %q", s)
	}
}

// EffectivePermissions holds the resolved principal sets for a path.
// All three kinds are always present; a nil slice means no principal
// holds that kind. Values are canonically formatted (deduplicated,
// sorted, wildcard-collapsed) and must not be mutated after resolution.
type EffectivePermissions struct {
	Read  []string
	Write []string
	Admin []string
}

// Get returns the principal set for a kind.
func (e EffectivePermissions) Get(kind Permission) []string {
	switch kind {
	case Read:
		return e.Read
	case Write:
		return e.Write
	case Admin:
		return e.Admin
	default:
		return nil
	}
}

// Has reports whether user holds the kind, either directly or through
// the wildcard principal. It does not apply the permission hierarchy or
// the owner bypass; see Authorizer.HasPermission and
// Authorizer.CanAccess.
func (e EffectivePermissions) Has(kind Permission, user string) bool {
	for _, principal := range e.Get(kind) {
		if principal == ruleset.Everyone || principal == user {
			return true
		}
	}
	return false
}

// FormatPrincipals canonicalizes a principal list: duplicates are
// removed and "public" is treated as the wildcard. A wildcard collapses
// the whole set to just "*", since it already implies everyone. The
// result is sorted ascending; an empty input yields nil.
func FormatPrincipals(principals []string) []string {
	if len(principals) == 0 {
		return nil
	}
	unique := make(map[string]struct{}, len(principals))
	for _, p := range principals {
		if p == ruleset.Everyone || p == ruleset.Public {
			return []string{ruleset.Everyone}
		}
		unique[p] = struct{}{}
	}
	formatted := make([]string, 0, len(unique))
	for p := range unique {
		formatted = append(formatted, p)
	}
	sort.Strings(formatted)
	return formatted
}
