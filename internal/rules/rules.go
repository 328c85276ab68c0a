package rules

import (
	"errors"
	"fmt"
	"iter"

	"github.com/dlclark/regexp2"
	"github.com/vibewolf/vibewolf/internal/types"
)

// ErrInvalidRule marks a rule definition that cannot be compiled.
var ErrInvalidRule = errors.New("invalid rule")

// Rule is a named detector: ordered case-insensitive patterns, a severity and
// explanatory text. Rules are read-only once part of a RuleSet.
type Rule struct {
	ID             string
	Patterns       []string
	Severity       types.Severity
	Description    string
	Recommendation string

	matchers []*regexp2.Regexp
}

// Group is a themed batch of rules merged into the catalog as a unit.
type Group struct {
	Name  string
	Rules []Rule
}

// Match searches line with each pattern in order and returns the index of the
// first pattern that matches. Later patterns are not evaluated once one hits,
// so a rule yields at most one hit per line. Patterns run without a match
// timeout, so a long line is always searched to the end.
func (r Rule) Match(line string) (int, bool) {
	for i, re := range r.matchers {
		// regexp2 only errors on timeout, and none is set.
		if ok, _ := re.MatchString(line); ok {
			return i, true
		}
	}
	return -1, false
}

func compile(r Rule) (Rule, error) {
	if r.ID == "" {
		return r, fmt.Errorf("%w: empty id", ErrInvalidRule)
	}
	if len(r.Patterns) == 0 {
		return r, fmt.Errorf("%w: %s has no patterns", ErrInvalidRule, r.ID)
	}
	if !r.Severity.Valid() {
		return r, fmt.Errorf("%w: %s has unknown severity %q", ErrInvalidRule, r.ID, r.Severity)
	}
	out := r
	out.Patterns = append([]string(nil), r.Patterns...)
	out.matchers = make([]*regexp2.Regexp, 0, len(r.Patterns))
	for i, p := range r.Patterns {
		re, err := regexp2.Compile(p, regexp2.IgnoreCase)
		if err != nil {
			return r, fmt.Errorf("%w: %s pattern %d %q: %v", ErrInvalidRule, r.ID, i, p, err)
		}
		out.matchers = append(out.matchers, re)
	}
	return out, nil
}

// RuleSet is an ordered mapping from rule id to Rule. Iteration follows
// insertion order; re-adding an id replaces the earlier rule in its
// original position.
type RuleSet struct {
	rules []Rule
	byID  map[string]int
}

func newRuleSet(capacity int) RuleSet {
	return RuleSet{
		rules: make([]Rule, 0, capacity),
		byID:  make(map[string]int, capacity),
	}
}

// put inserts r, overwriting any rule with the same id (last writer wins).
func (rs *RuleSet) put(r Rule) {
	if idx, ok := rs.byID[r.ID]; ok {
		rs.rules[idx] = r
		return
	}
	rs.byID[r.ID] = len(rs.rules)
	rs.rules = append(rs.rules, r)
}

// Rules returns the rules in iteration order. The slice is a copy.
func (rs RuleSet) Rules() []Rule {
	return append([]Rule(nil), rs.rules...)
}

// All iterates the rules in order without copying.
func (rs RuleSet) All() iter.Seq[Rule] {
	return func(yield func(Rule) bool) {
		for _, r := range rs.rules {
			if !yield(r) {
				return
			}
		}
	}
}

// IDs returns rule ids in iteration order.
func (rs RuleSet) IDs() []string {
	ids := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		ids[i] = r.ID
	}
	return ids
}

// Get looks up a rule by id.
func (rs RuleSet) Get(id string) (Rule, bool) {
	idx, ok := rs.byID[id]
	if !ok {
		return Rule{}, false
	}
	return rs.rules[idx], true
}

// Len is the number of rules in the set.
func (rs RuleSet) Len() int { return len(rs.rules) }

// Build compiles the groups and merges them in the given order. When two
// groups define the same id the later definition wins.
func Build(groups ...Group) (RuleSet, error) {
	n := 0
	for _, g := range groups {
		n += len(g.Rules)
	}
	rs := newRuleSet(n)
	for _, g := range groups {
		for _, r := range g.Rules {
			c, err := compile(r)
			if err != nil {
				if g.Name != "" {
					return RuleSet{}, fmt.Errorf("group %s: %w", g.Name, err)
				}
				return RuleSet{}, err
			}
			rs.put(c)
		}
	}
	return rs, nil
}

// MustBuild is Build that panics on an invalid rule.
func MustBuild(groups ...Group) RuleSet {
	rs, err := Build(groups...)
	if err != nil {
		panic(err)
	}
	return rs
}

// DefaultGroups returns the built-in groups in merge order.
func DefaultGroups() []Group {
	return []Group{xssGroup(), secretGroup(), injectionGroup(), cryptoGroup(), securityGroup()}
}

// Load builds the built-in catalog. Repeated calls yield identical sets.
func Load() (RuleSet, error) {
	return Build(DefaultGroups()...)
}

// MustLoad is Load that panics when a built-in rule is malformed.
func MustLoad() RuleSet {
	return MustBuild(DefaultGroups()...)
}

// Collision describes an id defined by more than one group.
type Collision struct {
	ID           string
	Groups       []string
	Severities   []types.Severity
	SameSeverity bool
}

// Collisions lists ids that appear in more than one group, in first-seen
// order. Build resolves them by last-writer-wins; callers can surface the
// list to rule owners when severities differ.
func Collisions(groups ...Group) []Collision {
	seen := map[string]int{}
	var out []Collision
	for _, g := range groups {
		for _, r := range g.Rules {
			idx, ok := seen[r.ID]
			if !ok {
				seen[r.ID] = len(out)
				out = append(out, Collision{ID: r.ID, Groups: []string{g.Name}, Severities: []types.Severity{r.Severity}, SameSeverity: true})
				continue
			}
			c := &out[idx]
			c.Groups = append(c.Groups, g.Name)
			if c.Severities[0] != r.Severity {
				c.SameSeverity = false
			}
			c.Severities = append(c.Severities, r.Severity)
		}
	}
	dups := out[:0]
	for _, c := range out {
		if len(c.Groups) > 1 {
			dups = append(dups, c)
		}
	}
	return dups
}
