// Package constraints implements the peer-call constraint detector of
// spec.md §4.4, ported from the original implementation's
// ConstantDetector.py/utils.py check_function_call/check_constant pair: a
// best-effort text scan over rendered predicates, not a semantic analysis.
package constraints

import (
	"strconv"
	"strings"

	"github.com/pathprove/pathprove/internal/ssa"
)

// CallSiteConstants maps a call-site key ("<func>**<predicate-index>") to
// its resolved argument vector; an argument that could not be resolved to a
// literal is recorded as the literal string "unknown".
type CallSiteConstants map[string][]string

type callSite struct {
	key      string
	args     []string
	location int
}

// Detect scans predicates for calls to any name in peerNames, resolves each
// call's arguments against prior equations, drops calls whose arguments are
// entirely unresolved, and strips every call predicate (they are not
// solver-encodable in isolation) from the returned slice.
func Detect(predicates []*ssa.Predicate, peerNames map[string]bool) ([]*ssa.Predicate, CallSiteConstants) {
	texts := make([]string, len(predicates))
	for i, p := range predicates {
		texts[i] = p.Text
	}

	removed := make(map[int]bool)
	var sites []callSite

	for i, text := range texts {
		parts := strings.Split(text, "(")
		for j, fc := range parts {
			if !peerNames[fc] || j+1 >= len(parts) {
				continue
			}
			raw := strings.ReplaceAll(parts[j+1], ")", "")
			args := strings.Split(raw, ",")
			sites = append(sites, callSite{
				key:      fc + "**" + itoa(i),
				args:     args,
				location: i,
			})
			removed[i] = true
		}
	}

	calls := make(CallSiteConstants)
	for _, site := range sites {
		resolved := make([]string, len(site.args))
		allUnknown := true
		for k, arg := range site.args {
			v := resolveConstant(strings.TrimSpace(arg), texts, site.location)
			if v == "" {
				v = "unknown"
			} else {
				allUnknown = false
			}
			resolved[k] = v
		}
		if !allUnknown {
			calls[site.key] = resolved
		}
	}

	var surviving []*ssa.Predicate
	for i, p := range predicates {
		if !removed[i] {
			surviving = append(surviving, p)
		}
	}
	return surviving, calls
}

// resolveConstant scans texts[0..location] in order for an equation
// "<variable> == <literal>" with no comma (to avoid matching inside
// tuples/argument lists), returning the last such literal found, or "" if
// none. Matching is substring-based, matching the original heuristic's
// `variable in ct` check rather than token-exact matching.
func resolveConstant(variable string, texts []string, location int) string {
	constant := ""
	for i, text := range texts {
		if i > location {
			break
		}
		if !strings.Contains(text, variable) || !strings.Contains(text, " == ") || strings.Contains(text, ",") {
			continue
		}
		parts := strings.Split(text, " == ")
		value := strings.TrimSpace(parts[len(parts)-1])
		if isNumber(value) {
			constant = value
		}
	}
	return constant
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func itoa(i int) string { return strconv.Itoa(i) }
