// Package ruleset defines the rule-file data model and the sources that
// supply rule files to the permission resolver.
//
// A rule file is anchored at one directory and holds an ordered list of
// rules plus a terminal flag. Rule order is declaration order; the
// resolver depends on it.
package ruleset

import (
	"sort"

	"github.com/tmcnab/aclwalk/pkg/glob"
)

// FileName is the canonical name of a rule file inside its directory.
const FileName = "syft.pub.yaml"

// Everyone is the wildcard principal. Access lists may also spell it
// "public"; both grant to all users.
const Everyone = "*"

// Public is the accepted alias for Everyone in rule files.
const Public = "public"

// Access lists the principals granted each permission kind by a rule.
// A nil list means the rule makes no grant for that kind. The create
// list is accepted so interoperating rule files parse, but resolution
// does not materialize a create kind.
type Access struct {
	Admin  []string `yaml:"admin,omitempty"`
	Read   []string `yaml:"read,omitempty"`
	Create []string `yaml:"create,omitempty"`
	Write  []string `yaml:"write,omitempty"`
}

// Rule grants access to paths matching a glob pattern relative to the
// directory that owns the rule file.
type Rule struct {
	Pattern string `yaml:"pattern"`
	Access  Access `yaml:"access"`
}

// RuleFile is the parsed content of one rule file. When Terminal is
// true the file walls off all inheritance from ancestor directories,
// whether or not any of its rules match.
type RuleFile struct {
	Terminal bool   `yaml:"terminal,omitempty"`
	Rules    []Rule `yaml:"rules"`
}

// SortRulesBySpecificity returns the rules ordered most-specific first
// by pattern specificity score. The sort is stable, so rules with equal
// scores keep their declaration order.
//
// Resolution itself uses declaration order; this ordering is a separate
// utility for tooling that wants to present or prioritize rules by how
// narrowly they target paths.
func SortRulesBySpecificity(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return glob.Score(sorted[i].Pattern) > glob.Score(sorted[j].Pattern)
	})
	return sorted
}
