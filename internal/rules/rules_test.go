package rules

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibewolf/vibewolf/internal/types"
)

func TestLoad_CatalogOrderAndIdempotence(t *testing.T) {
	a, err := Load()
	require.NoError(t, err)
	b, err := Load()
	require.NoError(t, err)

	want := []string{
		"xss_vulnerabilities",
		"exposed_secrets",
		"sql_injection",
		"unsafe_eval",
		"weak_crypto",
		"firebase_security",
		"firebase_critical",
		"insecure_http",
		"timing_attacks",
		"insecure_storage",
		"cors_issues",
	}
	assert.Equal(t, want, a.IDs())
	assert.Equal(t, a.IDs(), b.IDs())
	for _, r := range a.Rules() {
		other, ok := b.Get(r.ID)
		require.True(t, ok)
		assert.Equal(t, r.Patterns, other.Patterns)
		assert.Equal(t, r.Severity, other.Severity)
		assert.NotEmpty(t, r.Patterns, r.ID)
		assert.NotEmpty(t, r.Recommendation, r.ID)
	}
}

func TestDefaultGroups_NoCollisions(t *testing.T) {
	assert.Empty(t, Collisions(DefaultGroups()...))
}

func TestBuild_LastWriterWins(t *testing.T) {
	first := Group{Name: "one", Rules: []Rule{
		{ID: "dup", Patterns: []string{"first"}, Severity: types.SevCritical},
		{ID: "other", Patterns: []string{"x"}, Severity: types.SevLow},
	}}
	second := Group{Name: "two", Rules: []Rule{
		{ID: "dup", Patterns: []string{"second"}, Severity: types.SevMedium},
	}}

	rs, err := Build(first, second)
	require.NoError(t, err)
	assert.Equal(t, []string{"dup", "other"}, rs.IDs(), "overwrite keeps the original position")
	r, ok := rs.Get("dup")
	require.True(t, ok)
	assert.Equal(t, types.SevMedium, r.Severity)
	assert.Equal(t, []string{"second"}, r.Patterns)

	cs := Collisions(first, second)
	require.Len(t, cs, 1)
	assert.Equal(t, "dup", cs[0].ID)
	assert.Equal(t, []string{"one", "two"}, cs[0].Groups)
	assert.False(t, cs[0].SameSeverity)
}

func TestBuild_InvalidRules(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"bad pattern", Rule{ID: "broken", Patterns: []string{"(unclosed"}, Severity: types.SevHigh}},
		{"no patterns", Rule{ID: "empty", Severity: types.SevHigh}},
		{"bad severity", Rule{ID: "sev", Patterns: []string{"x"}, Severity: "high"}},
		{"no id", Rule{Patterns: []string{"x"}, Severity: types.SevHigh}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(Group{Name: "g", Rules: []Rule{tt.rule}})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRule))
		})
	}
	assert.Panics(t, func() {
		MustBuild(Group{Rules: []Rule{{ID: "broken", Patterns: []string{"[a-"}, Severity: types.SevLow}}})
	})
}

func TestRuleMatch_FirstPatternWins(t *testing.T) {
	rs := MustBuild(Group{Rules: []Rule{{
		ID:       "multi",
		Patterns: []string{"foo", "FOO.*bar", "bar"},
		Severity: types.SevHigh,
	}}})
	r, _ := rs.Get("multi")

	idx, ok := r.Match("xx Foo and BAR")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = r.Match("only bar here")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = r.Match("nothing")
	assert.False(t, ok)
}

func TestRuleMatch_Lookahead(t *testing.T) {
	rs := MustLoad()
	r, ok := rs.Get("insecure_http")
	require.True(t, ok)

	_, hit := r.Match(`const url = "http://example.com/api";`)
	assert.True(t, hit)
	_, hit = r.Match(`const url = "http://localhost:3000";`)
	assert.False(t, hit)
	_, hit = r.Match(`const url = "http://127.0.0.1:8080";`)
	assert.False(t, hit)
}

func TestUnsafeEval_BareFunctionCallNotFlagged(t *testing.T) {
	rs := MustLoad()
	r, _ := rs.Get("unsafe_eval")

	_, hit := r.Match(`const fn = httpsCallable(functions, "sendMail"); fn({ to })`)
	assert.False(t, hit)
	_, hit = r.Match(`exports.api = functions.https.onCall(Function(data))`)
	assert.False(t, hit)
	_, hit = r.Match(`const f = new Function("a", "return a")`)
	assert.True(t, hit)
	_, hit = r.Match(`setTimeout("doThing()", 10)`)
	assert.True(t, hit)
	_, hit = r.Match(`setTimeout(() => doThing(), 10)`)
	assert.False(t, hit)
}

func TestSecrets_CommentedKeyPattern(t *testing.T) {
	rs := MustLoad()
	r, _ := rs.Get("exposed_secrets")
	key := "abcdefghijklmnopqrstuvwxyz0123456789ABCD"

	for _, line := range []string{
		`const k = "` + key + `" // api`,
		`const k = '` + key + `' // secret key`,
		`k=x"` + key + `"//token`,
		key + ` // TOKEN`,
		`const img = "` + strings.Repeat("A", 5000) + `"; const k = "` + key + `" // api`,
	} {
		_, hit := r.Match(line)
		assert.True(t, hit, line)
	}
	for _, line := range []string{
		`const k = "short" // api`,
		`const k = "` + key + `" // nothing here`,
		`const img = "` + strings.Repeat("A", 5000) + `";`,
	} {
		_, hit := r.Match(line)
		assert.False(t, hit, line)
	}
}
