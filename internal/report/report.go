// Package report renders an orchestrator.Report to the textual, stable
// output format of spec.md §6.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pathprove/pathprove/internal/orchestrator"
	"github.com/pathprove/pathprove/internal/solver"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Write renders rep to w. color enables ANSI coloring of the sat/unsat
// verdict line; callers decide this from isatty on the destination stream.
func Write(w io.Writer, rep *orchestrator.Report, color bool) {
	var total, sat, unsat int

	for _, fn := range rep.Functions {
		fmt.Fprintln(w, fn.Name)
		if fn.Skipped {
			fmt.Fprintf(w, "  skipped: %s\n\n", fn.SkippedReason)
			continue
		}
		for _, p := range fn.Paths {
			writePath(w, p, color, "")
			total++
			if p.Result.Sat {
				sat++
			} else {
				unsat++
			}
			for _, rc := range p.Rechecks {
				fmt.Fprintf(w, "  -- recheck %s with %s --\n", rc.Callee, formatInserted(rc.Inserted))
				for _, rp := range rc.Function.Paths {
					writePath(w, rp, color, "  ")
					total++
					if rp.Result.Sat {
						sat++
					} else {
						unsat++
					}
				}
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s paths analyzed (%s sat, %s unsat)\n",
		humanize.Comma(int64(total)), humanize.Comma(int64(sat)), humanize.Comma(int64(unsat)))
}

func writePath(w io.Writer, p *orchestrator.PathReport, color bool, indent string) {
	fmt.Fprintf(w, "%s ---- path: %d ----\n", indent, p.Index)
	fmt.Fprintf(w, "%sConstraint Path: [%s]\n", indent, strings.Join(p.Predicates, ", "))

	if p.Result.Sat {
		line := fmt.Sprintf("Constraint Arguments: {%s}", formatArgs(p.Result.Params))
		fmt.Fprintf(w, "%s%s\n", indent, colorize(color, ansiGreen, line))
		return
	}

	u := p.Result.Unsat
	line := fmt.Sprintf("Unsat core (%d clauses): %s", len(u.Clause), formatCore(u.Clause))
	fmt.Fprintf(w, "%s%s\n", indent, colorize(color, ansiRed, line))
	fmt.Fprintf(w, "%sStatements in Unsat Path: %s\n", indent, formatStatements(u.Clause))
}

func colorize(enabled bool, code, text string) string {
	if !enabled {
		return text
	}
	return code + text + ansiReset
}

func formatArgs(params map[string]solver.Value) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, params[name].String())
	}
	return strings.Join(parts, ", ")
}

func formatCore(clauses []solver.ClauseInfo) string {
	parts := make([]string, len(clauses))
	for i, c := range clauses {
		parts[i] = fmt.Sprintf("%s:%s", c.Label, c.Text)
	}
	return strings.Join(parts, " ")
}

func formatStatements(clauses []solver.ClauseInfo) string {
	parts := make([]string, len(clauses))
	for i, c := range clauses {
		parts[i] = fmt.Sprintf("Line%d:%s", c.Line, c.Text)
	}
	return strings.Join(parts, " ")
}

func formatInserted(inserted map[string]string) string {
	names := make([]string, 0, len(inserted))
	for name := range inserted {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%s", name, inserted[name])
	}
	return strings.Join(parts, ", ")
}
