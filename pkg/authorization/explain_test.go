package authorization

import (
	"strings"
	"testing"

	"github.com/tmcnab/aclwalk/pkg/ruleset"
)

func explainFixture() *Authorizer {
	source := ruleset.NewMemorySource(map[string]*ruleset.RuleFile{
		"ds": {Rules: []ruleset.Rule{
			grant("**", ruleset.Access{Write: []string{"carol@x.com"}}),
		}},
		"ds/proj": {Rules: []ruleset.Rule{
			grant("*.txt", ruleset.Access{Read: []string{"bob@x.com", "*"}}),
		}},
		"ds/proj/sealed": {Terminal: true},
	})
	return NewAuthorizer(source, nil)
}

func TestCheckWithReasonsOwner(t *testing.T) {
	auth := NewAuthorizer(ruleset.NewMemorySource(nil), nil)
	result := auth.CheckWithReasons("alice@x.com", "srv/datasites/alice@x.com/f.txt", Admin)
	if !result.Granted {
		t.Fatal("owner must be granted")
	}
	if len(result.Reasons) != 1 || result.Reasons[0] != "Owner of path" {
		t.Errorf("Reasons = %v, want [Owner of path]", result.Reasons)
	}
}

func TestCheckWithReasonsExplicitGrant(t *testing.T) {
	auth := explainFixture()
	result := auth.CheckWithReasons("bob@x.com", "ds/proj/notes.txt", Read)
	if !result.Granted {
		t.Fatal("expected grant")
	}
	assertReason(t, result.Reasons, "Explicitly granted read in ds/proj")
	assertReason(t, result.Reasons, `Pattern "*.txt" matched`)
	assertReason(t, result.Reasons, "Public access (*)")
	if len(result.Sources) == 0 || result.Sources[0] != "ds/proj" {
		t.Errorf("Sources = %v, want [ds/proj ...]", result.Sources)
	}
}

func TestCheckWithReasonsInherited(t *testing.T) {
	auth := explainFixture()
	result := auth.CheckWithReasons("carol@x.com", "ds/proj/notes.txt", Write)
	if !result.Granted {
		t.Fatal("expected inherited grant")
	}
	assertReason(t, result.Reasons, "Inherited from ds")
}

func TestCheckWithReasonsTerminalBlocked(t *testing.T) {
	auth := explainFixture()
	result := auth.CheckWithReasons("bob@x.com", "ds/proj/sealed/notes.txt", Read)
	if result.Granted {
		t.Fatal("terminal must block")
	}
	assertReason(t, result.Reasons, "Blocked by terminal at ds/proj/sealed")
}

func TestCheckWithReasonsNoPermission(t *testing.T) {
	auth := explainFixture()
	result := auth.CheckWithReasons("nobody@x.com", "ds/proj/notes.txt", Admin)
	if result.Granted {
		t.Fatal("expected denial")
	}
	if len(result.Reasons) != 1 || result.Reasons[0] != "No permission found" {
		t.Errorf("Reasons = %v, want [No permission found]", result.Reasons)
	}
}

func TestCheckWithReasonsMatchesOutcome(t *testing.T) {
	auth := explainFixture()
	paths := []string{"ds/proj/notes.txt", "ds/proj/data.csv", "ds/proj/sealed/x.txt", "elsewhere/f"}
	users := []string{"bob@x.com", "carol@x.com", "nobody@x.com"}
	for _, p := range paths {
		for _, u := range users {
			for _, kind := range Kinds {
				want := auth.HasPermission(u, p, kind)
				got := auth.CheckWithReasons(u, p, kind).Granted
				if got != want {
					t.Errorf("CheckWithReasons(%q, %q, %v).Granted = %v, HasPermission = %v",
						u, p, kind, got, want)
				}
			}
		}
	}
}

func TestExplain(t *testing.T) {
	auth := explainFixture()
	out := auth.Explain("bob@x.com", "ds/proj/notes.txt")
	for _, want := range []string{"READ: GRANTED", "WRITE: DENIED", "ADMIN: DENIED", "Explicitly granted read in ds/proj"} {
		if !strings.Contains(out, want) {
			t.Errorf("Explain output missing %q:\n%s", want, out)
		}
	}
}

func assertReason(t *testing.T, reasons []string, want string) {
	t.Helper()
	for _, r := range reasons {
		if r == want {
			return
		}
	}
	t.Errorf("reasons %v missing %q", reasons, want)
}
