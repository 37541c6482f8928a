package ruleset

import "github.com/tmcnab/aclwalk/pkg/pathutil"

// MemorySource provides rule files from an in-memory map keyed by
// normalized directory path ("" is the root).
type MemorySource struct {
	files map[string]*RuleFile
}

// NewMemorySource creates a MemorySource from the given map. Keys are
// normalized on insertion.
func NewMemorySource(files map[string]*RuleFile) *MemorySource {
	normalized := make(map[string]*RuleFile, len(files))
	for dir, rf := range files {
		normalized[pathutil.Normalize(dir)] = rf
	}
	return &MemorySource{files: normalized}
}

// RuleFile implements Source.
func (s *MemorySource) RuleFile(dir string) (*RuleFile, error) {
	return s.files[pathutil.Normalize(dir)], nil
}

// Set adds or replaces the rule file at dir.
func (s *MemorySource) Set(dir string, rf *RuleFile) {
	s.files[pathutil.Normalize(dir)] = rf
}

// Remove deletes the rule file at dir.
func (s *MemorySource) Remove(dir string) {
	delete(s.files, pathutil.Normalize(dir))
}
