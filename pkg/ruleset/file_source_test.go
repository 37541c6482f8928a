package ruleset

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRuleFile(t *testing.T, fs afero.Fs, dir, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(dir, 0755))
	require.NoError(t, afero.WriteFile(fs, dir+"/"+FileName, []byte(content), 0644))
}

func TestFileSourceReadsRuleFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeRuleFile(t, fs, "root/project", `
terminal: true
rules:
  - pattern: "*.key"
    access:
      admin:
        - alice@x.com
  - pattern: "**"
    access:
      read:
        - public
`)
	source := NewFileSourceFs(fs, "root")

	rf, err := source.RuleFile("project")
	require.NoError(t, err)
	require.NotNil(t, rf)
	assert.True(t, rf.Terminal)
	require.Len(t, rf.Rules, 2)
	assert.Equal(t, "*.key", rf.Rules[0].Pattern)
	assert.Equal(t, []string{"alice@x.com"}, rf.Rules[0].Access.Admin)
	assert.Equal(t, []string{"public"}, rf.Rules[1].Access.Read)
}

func TestFileSourceMissingFile(t *testing.T) {
	source := NewFileSourceFs(afero.NewMemMapFs(), "root")

	rf, err := source.RuleFile("nowhere")
	assert.NoError(t, err)
	assert.Nil(t, rf)
}

func TestFileSourceMalformedContentFailsOpen(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeRuleFile(t, fs, "root/broken", "rules: [not: {valid")
	source := NewFileSourceFs(fs, "root")

	rf, err := source.RuleFile("broken")
	assert.NoError(t, err)
	assert.Nil(t, rf, "malformed content must read as no rule file")
}

func TestFileSourceRootDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeRuleFile(t, fs, "root", `
rules:
  - pattern: "**"
    access:
      read: ["*"]
`)
	source := NewFileSourceFs(fs, "root")

	rf, err := source.RuleFile("")
	require.NoError(t, err)
	require.NotNil(t, rf)
	assert.False(t, rf.Terminal)
	require.Len(t, rf.Rules, 1)
}

func TestParseDefaults(t *testing.T) {
	rf, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.False(t, rf.Terminal)
	assert.Empty(t, rf.Rules)

	rf, err = Parse([]byte(`
rules:
  - pattern: "data/*.csv"
    access:
      write: [bob@x.com]
      create: [bob@x.com]
`))
	require.NoError(t, err)
	require.Len(t, rf.Rules, 1)
	assert.Equal(t, []string{"bob@x.com"}, rf.Rules[0].Access.Write)
	// create lists parse but are not resolved
	assert.Equal(t, []string{"bob@x.com"}, rf.Rules[0].Access.Create)
	assert.Nil(t, rf.Rules[0].Access.Read)
}
