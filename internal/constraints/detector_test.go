package constraints_test

import (
	"testing"

	"github.com/pathprove/pathprove/internal/constraints"
	"github.com/pathprove/pathprove/internal/ssa"
)

func pred(text string) *ssa.Predicate {
	return &ssa.Predicate{Text: text}
}

func TestDetectResolvesConstantArgument(t *testing.T) {
	preds := []*ssa.Predicate{
		pred("_n_0 == 5"),
		pred("guard(n)"),
	}
	peers := map[string]bool{"guard": true}
	surviving, calls := constraints.Detect(preds, peers)

	if len(surviving) != 1 || surviving[0].Text != "_n_0 == 5" {
		t.Fatalf("surviving = %v, want only the equation predicate", surviving)
	}
	site, ok := calls["guard**1"]
	if !ok {
		t.Fatalf("calls = %v, want a guard**1 entry", calls)
	}
	if len(site) != 1 || site[0] != "5" {
		t.Errorf("resolved args = %v, want [5]", site)
	}
}

func TestDetectDropsCallWithAllUnknownArgs(t *testing.T) {
	preds := []*ssa.Predicate{
		pred("guard(n)"),
	}
	peers := map[string]bool{"guard": true}
	_, calls := constraints.Detect(preds, peers)
	if len(calls) != 0 {
		t.Errorf("calls = %v, want none for an unresolved argument", calls)
	}
}

func TestDetectIgnoresNonPeerCalls(t *testing.T) {
	preds := []*ssa.Predicate{
		pred("_n_0 == 1"),
		pred("other(n)"),
	}
	peers := map[string]bool{"guard": true}
	surviving, calls := constraints.Detect(preds, peers)
	if len(surviving) != 2 {
		t.Errorf("surviving = %v, want both predicates kept (other is not a peer)", surviving)
	}
	if len(calls) != 0 {
		t.Errorf("calls = %v, want none", calls)
	}
}

func TestDetectUsesLastMatchingEquation(t *testing.T) {
	preds := []*ssa.Predicate{
		pred("_n_0 == 1"),
		pred("_n_1 == 9"),
		pred("guard(n)"),
	}
	peers := map[string]bool{"guard": true}
	_, calls := constraints.Detect(preds, peers)
	site, ok := calls["guard**2"]
	if !ok {
		t.Fatalf("expected a guard**2 entry, got %v", calls)
	}
	if site[0] != "9" {
		t.Errorf("resolved arg = %q, want 9 (last matching equation before the call)", site[0])
	}
}

func TestDetectStripsCallPredicateEvenWhenResolved(t *testing.T) {
	preds := []*ssa.Predicate{
		pred("_n_0 == 5"),
		pred("guard(n)"),
		pred("_m_0 == 2"),
	}
	peers := map[string]bool{"guard": true}
	surviving, _ := constraints.Detect(preds, peers)
	for _, p := range surviving {
		if p.Text == "guard(n)" {
			t.Errorf("call predicate %q should have been stripped", p.Text)
		}
	}
	if len(surviving) != 2 {
		t.Errorf("surviving = %v, want 2 equation predicates", surviving)
	}
}
