package ruleset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/tmcnab/aclwalk/pkg/logging"
	"github.com/tmcnab/aclwalk/pkg/pathutil"
)

// FileSource reads rule files from a directory tree on a filesystem.
// Directory arguments are interpreted relative to the configured root.
type FileSource struct {
	fs   afero.Fs
	root string
}

// NewFileSource creates a FileSource rooted at rootDir on the OS
// filesystem.
func NewFileSource(rootDir string) *FileSource {
	return NewFileSourceFs(afero.NewOsFs(), rootDir)
}

// NewFileSourceFs creates a FileSource rooted at rootDir on the given
// filesystem.
func NewFileSourceFs(fs afero.Fs, rootDir string) *FileSource {
	return &FileSource{fs: fs, root: rootDir}
}

// RuleFile implements Source. A missing rule file returns (nil, nil).
// Malformed content is logged and also treated as no rule file, so a
// broken file degrades to "no grants here" instead of failing lookups
// that pass through its directory.
func (s *FileSource) RuleFile(dir string) (*RuleFile, error) {
	full := filepath.Join(s.root, filepath.FromSlash(pathutil.Normalize(dir)), FileName)

	data, err := afero.ReadFile(s.fs, full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rule file: %w", err)
	}

	rf, err := Parse(data)
	if err != nil {
		logging.App.Debug("Ignoring malformed rule file", "path", full, "error", err)
		return nil, nil
	}
	return rf, nil
}

// Parse decodes rule-file content. Empty content yields an empty,
// non-terminal rule file.
func Parse(data []byte) (*RuleFile, error) {
	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rule file: %w", err)
	}
	if rf.Rules == nil {
		rf.Rules = []Rule{}
	}
	return &rf, nil
}
