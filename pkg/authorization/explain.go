package authorization

import (
	"fmt"
	"path"
	"strings"

	"github.com/tmcnab/aclwalk/pkg/glob"
	"github.com/tmcnab/aclwalk/pkg/pathutil"
	"github.com/tmcnab/aclwalk/pkg/ruleset"
)

// GrantSource records where a resolved grant came from.
type GrantSource struct {
	Dir       string // directory owning the rule file
	Pattern   string // rule pattern that matched
	Terminal  bool   // grant came from a terminal rule file
	Inherited bool   // grant came from above the path's parent directory
}

// Result is the outcome of a permission check together with the reasons
// narrating it. The reasons never change the outcome; Granted always
// equals what HasPermission returns for the same inputs.
type Result struct {
	Granted  bool
	Reasons  []string
	Sources  []string // directories the decision drew from
	Patterns []string // patterns that matched
}

const (
	reasonOwner        = "Owner of path"
	reasonPublic       = "Public access (*)"
	reasonNoPermission = "No permission found"
)

func reasonExplicit(kind Permission, dir string) string {
	return fmt.Sprintf("Explicitly granted %s in %s", kind, displayDir(dir))
}

func reasonInherited(dir string) string {
	return fmt.Sprintf("Inherited from %s", displayDir(dir))
}

func reasonPattern(pattern string) string {
	return fmt.Sprintf("Pattern %q matched", pattern)
}

func reasonTerminalBlocked(dir string) string {
	return fmt.Sprintf("Blocked by terminal at %s", displayDir(dir))
}

func displayDir(dir string) string {
	if dir == "" {
		return "/"
	}
	return dir
}

// resolution is the source-tracking counterpart of a resolved path.
type resolution struct {
	perms       EffectivePermissions
	sources     map[Permission][]GrantSource
	hitTerminal bool
	terminalDir string
}

// resolveWithSources performs the same walk as Resolve while recording,
// per kind, the directory and pattern that produced each grant. It
// bypasses the cache: explanations always reflect the current rules.
func (a *Authorizer) resolveWithSources(p string) resolution {
	res := resolution{sources: make(map[Permission][]GrantSource)}

	for current := p; current != ""; {
		dir := pathutil.Parent(current)
		current = dir

		rf, err := a.source.RuleFile(dir)
		if err != nil || rf == nil {
			continue
		}

		rel := pathutil.RelativeTo(p, dir)

		if rf.Terminal {
			res.hitTerminal = true
			res.terminalDir = dir
			for _, rule := range rf.Rules {
				if !glob.Match(rule.Pattern, rel) {
					continue
				}
				for _, kind := range Kinds {
					principals := FormatPrincipals(accessFor(rule.Access, kind))
					if principals == nil {
						continue
					}
					res.perms = setKind(res.perms, kind, principals)
					res.sources[kind] = []GrantSource{{
						Dir:      dir,
						Pattern:  rule.Pattern,
						Terminal: true,
					}}
				}
				return res
			}
			return res
		}

		for _, rule := range rf.Rules {
			if !glob.Match(rule.Pattern, rel) {
				continue
			}
			for _, kind := range Kinds {
				principals := accessFor(rule.Access, kind)
				if len(principals) == 0 || res.perms.Get(kind) != nil {
					continue
				}
				res.perms = setKind(res.perms, kind, FormatPrincipals(principals))
				res.sources[kind] = append(res.sources[kind], GrantSource{
					Dir:       dir,
					Pattern:   rule.Pattern,
					Inherited: dir != pathutil.Parent(p),
				})
			}
		}
	}

	return res
}

func accessFor(access ruleset.Access, kind Permission) []string {
	switch kind {
	case Read:
		return access.Read
	case Write:
		return access.Write
	case Admin:
		return access.Admin
	default:
		return nil
	}
}

func setKind(eff EffectivePermissions, kind Permission, principals []string) EffectivePermissions {
	switch kind {
	case Read:
		eff.Read = principals
	case Write:
		eff.Write = principals
	case Admin:
		eff.Admin = principals
	}
	return eff
}

// CheckWithReasons reports whether user holds the kind on the path and
// why, drawing reasons from a small closed vocabulary: ownership,
// explicit or inherited grants, the matched pattern, public access,
// terminal blocking, or no permission at all.
func (a *Authorizer) CheckWithReasons(user, filePath string, kind Permission) Result {
	p := pathutil.Normalize(filePath)

	if IsOwner(p, user) {
		return Result{Granted: true, Reasons: []string{reasonOwner}}
	}

	res := a.resolveWithSources(p)

	empty := res.perms.Read == nil && res.perms.Write == nil && res.perms.Admin == nil
	if res.hitTerminal && empty {
		return Result{Reasons: []string{reasonTerminalBlocked(res.terminalDir)}}
	}

	result := Result{Granted: res.perms.Has(kind, user)}
	if result.Granted {
		if srcs := res.sources[kind]; len(srcs) > 0 {
			src := srcs[0]
			if src.Inherited {
				result.Reasons = append(result.Reasons, reasonInherited(src.Dir))
			} else {
				result.Reasons = append(result.Reasons, reasonExplicit(kind, src.Dir))
			}
			result.Sources = append(result.Sources, src.Dir)
			if src.Pattern != "" && src.Pattern != path.Base(p) {
				result.Reasons = append(result.Reasons, reasonPattern(src.Pattern))
				result.Patterns = append(result.Patterns, src.Pattern)
			}
		}
		if containsEveryone(res.perms.Get(kind)) {
			result.Reasons = append(result.Reasons, reasonPublic)
		}
	}

	if !result.Granted && len(result.Reasons) == 0 {
		result.Reasons = []string{reasonNoPermission}
	}
	return result
}

func containsEveryone(principals []string) bool {
	for _, p := range principals {
		if p == ruleset.Everyone {
			return true
		}
	}
	return false
}

// Explain renders a multi-kind permission analysis for a user on a
// path, one block per kind with the reasons indented beneath it.
func (a *Authorizer) Explain(user, filePath string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Permission analysis for %s on %s:\n\n", user, pathutil.Normalize(filePath))

	for _, kind := range []Permission{Admin, Write, Read} {
		result := a.CheckWithReasons(user, filePath, kind)
		status := "DENIED"
		if result.Granted {
			status = "GRANTED"
		}
		fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(kind.String()), status)
		for _, reason := range result.Reasons {
			fmt.Fprintf(&b, "  - %s\n", reason)
		}
		b.WriteString("\n")
	}
	return b.String()
}
