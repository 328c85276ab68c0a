package rules

import "github.com/vibewolf/vibewolf/internal/types"

// Filter derives the active subset of rs for cfg. A rule is dropped when cfg
// switches its id off or when its severity ranks below cfg's floor. A nil cfg
// returns rs unchanged. rs itself is never modified.
func Filter(rs RuleSet, cfg *types.ScanConfig) RuleSet {
	if cfg == nil {
		return rs
	}
	floor := cfg.Floor().Rank()
	out := newRuleSet(len(rs.rules))
	for _, r := range rs.rules {
		if !cfg.RuleEnabled(r.ID) {
			continue
		}
		if r.Severity.Rank() < floor {
			continue
		}
		out.put(r)
	}
	return out
}
