package authorization

import (
	"github.com/tmcnab/aclwalk/pkg/glob"
	"github.com/tmcnab/aclwalk/pkg/logging"
	"github.com/tmcnab/aclwalk/pkg/pathutil"
	"github.com/tmcnab/aclwalk/pkg/ruleset"
)

// OwnerSegment is the path segment marking the start of per-user
// namespaces; the segment that follows it names the owning principal.
const OwnerSegment = "datasites"

// Authorizer resolves effective permissions by walking a path's
// ancestor directories and consulting the rule file at each one.
//
// Resolution is a pure function of the path and whatever the source
// returns at call time; an Authorizer may be used concurrently as long
// as the source supports concurrent reads. The optional cache memoizes
// resolutions per normalized path.
type Authorizer struct {
	source ruleset.Source
	cache  *Cache
}

// NewAuthorizer creates an Authorizer reading rules from source. A nil
// cache disables memoization.
func NewAuthorizer(source ruleset.Source, cache *Cache) *Authorizer {
	return &Authorizer{source: source, cache: cache}
}

// Resolve returns the effective permissions for a path.
//
// Starting at the path's parent directory and walking up to the root,
// each directory's rule file contributes the principal sets of its
// first matching rule per kind, but only for kinds no closer directory
// has already filled. A terminal rule file ends the walk immediately:
// its first matching rule replaces everything accumulated so far, and a
// terminal file with no matching rule leaves the accumulated result
// as-is. Missing or unreadable rule files contribute nothing.
func (a *Authorizer) Resolve(filePath string) EffectivePermissions {
	p := pathutil.Normalize(filePath)

	if a.cache != nil {
		if eff, ok := a.cache.Get(p); ok {
			return eff
		}
	}

	eff := a.walk(p)

	if a.cache != nil {
		a.cache.Set(p, eff)
	}
	return eff
}

func (a *Authorizer) walk(p string) EffectivePermissions {
	var eff EffectivePermissions

	for current := p; current != ""; {
		dir := pathutil.Parent(current)
		current = dir

		rf, err := a.source.RuleFile(dir)
		if err != nil {
			logging.App.Debug("Skipping unreadable rule file", "dir", dir, "error", err)
			continue
		}
		if rf == nil {
			continue
		}

		rel := pathutil.RelativeTo(p, dir)

		if rf.Terminal {
			for _, rule := range rf.Rules {
				if glob.Match(rule.Pattern, rel) {
					// A matching terminal rule replaces anything
					// accumulated at closer levels.
					return EffectivePermissions{
						Read:  FormatPrincipals(rule.Access.Read),
						Write: FormatPrincipals(rule.Access.Write),
						Admin: FormatPrincipals(rule.Access.Admin),
					}
				}
			}
			// No match: the terminal file still stops inheritance.
			return eff
		}

		for _, rule := range rf.Rules {
			if !glob.Match(rule.Pattern, rel) {
				continue
			}
			if eff.Read == nil && len(rule.Access.Read) > 0 {
				eff.Read = FormatPrincipals(rule.Access.Read)
			}
			if eff.Write == nil && len(rule.Access.Write) > 0 {
				eff.Write = FormatPrincipals(rule.Access.Write)
			}
			if eff.Admin == nil && len(rule.Access.Admin) > 0 {
				eff.Admin = FormatPrincipals(rule.Access.Admin)
			}
		}
	}

	return eff
}

// HasPermission reports whether user holds the given kind on the path:
// either the user owns the enclosing namespace, or the resolved
// principal set for that kind contains the user or the wildcard.
func (a *Authorizer) HasPermission(user, filePath string, kind Permission) bool {
	if IsOwner(filePath, user) {
		return true
	}
	return a.Resolve(filePath).Has(kind, user)
}

// CanAccess reports whether user may act at the given level, applying
// the permission hierarchy: admin implies write, write implies read.
func (a *Authorizer) CanAccess(user, filePath string, level Permission) bool {
	if IsOwner(filePath, user) {
		return true
	}
	eff := a.Resolve(filePath)

	isAdmin := eff.Has(Admin, user)
	isWriter := isAdmin || eff.Has(Write, user)
	isReader := isWriter || eff.Has(Read, user)

	switch level {
	case Admin:
		return isAdmin
	case Write:
		return isWriter
	case Read:
		return isReader
	default:
		return false
	}
}

// IsOwner reports whether user owns the namespace containing the path.
// When the path contains an OwnerSegment, the owner is the segment
// immediately following it. Paths outside any datasite fall back to
// treating a user appearing as any segment as the owner.
func IsOwner(filePath, user string) bool {
	segments := pathutil.Segments(filePath)
	for i, segment := range segments {
		if segment == OwnerSegment {
			return i+1 < len(segments) && segments[i+1] == user
		}
	}
	for _, segment := range segments {
		if segment == user {
			return true
		}
	}
	return false
}
