package ruleset

// Source supplies rule-file content for directories. Implementations
// must return (nil, nil) when the directory has no rule file, so callers
// can distinguish "no rule there" from "rule there but empty".
//
// The resolver fails open on both nil results and errors: a directory
// whose rule file cannot be supplied simply contributes nothing to
// inheritance. Callers that need strict validation should exercise the
// source directly.
type Source interface {
	// RuleFile returns the rule file anchored at the given normalized
	// directory path ("" is the root).
	RuleFile(dir string) (*RuleFile, error)
}
