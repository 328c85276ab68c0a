package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vibewolf/vibewolf/internal/types"
)

func TestFilter_NilConfigIsIdentity(t *testing.T) {
	rs := MustLoad()
	assert.Equal(t, rs.IDs(), Filter(rs, nil).IDs())
}

func TestFilter_DisabledAndSeverity(t *testing.T) {
	rs := MustLoad()
	cfg := &types.ScanConfig{
		EnabledRules: map[string]bool{"exposed_secrets": false, "weak_crypto": true},
		MinSeverity:  types.SevHigh,
	}
	got := Filter(rs, cfg)
	for _, r := range got.Rules() {
		assert.NotEqual(t, "exposed_secrets", r.ID)
		assert.GreaterOrEqual(t, r.Severity.Rank(), types.SevHigh.Rank())
	}
	_, ok := got.Get("weak_crypto")
	assert.True(t, ok)
	_, ok = got.Get("insecure_http")
	assert.False(t, ok, "MEDIUM rule below HIGH floor")

	// input untouched
	assert.Equal(t, MustLoad().IDs(), rs.IDs())
}

func TestFilter_UnknownSeverityFallsBackToMedium(t *testing.T) {
	rs := MustBuild(Group{Rules: []Rule{
		{ID: "low", Patterns: []string{"a"}, Severity: types.SevLow},
		{ID: "med", Patterns: []string{"b"}, Severity: types.SevMedium},
	}})
	got := Filter(rs, &types.ScanConfig{MinSeverity: "nope"})
	assert.Equal(t, []string{"med"}, got.IDs())

	got = Filter(rs, &types.ScanConfig{MinSeverity: types.SevLow})
	assert.Equal(t, []string{"low", "med"}, got.IDs())
}

func TestFilter_Monotonic(t *testing.T) {
	rs := MustLoad()
	all := map[string]bool{}
	for _, id := range rs.IDs() {
		all[id] = true
	}
	prev := rs.Len() + 1
	for _, sev := range []types.Severity{types.SevLow, types.SevMedium, types.SevHigh, types.SevCritical} {
		got := Filter(rs, &types.ScanConfig{MinSeverity: sev})
		for _, id := range got.IDs() {
			assert.True(t, all[id], "filtered id %s must come from input", id)
		}
		assert.LessOrEqual(t, got.Len(), prev, "raising the floor never adds rules (%s)", sev)
		prev = got.Len()
	}
}
