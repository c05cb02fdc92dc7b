package gonigmo

import (
	"bufio"
	"fmt"
	"io"
	"regexp/syntax"
	"strings"
)

// WriteDot writes the compiled program as a Graphviz digraph. Solid edges
// are the preferred branch, dashed edges the alternative.
func (re *Regex) WriteDot(w io.Writer) error {
	re.checkOpen()
	prog := re.program.Prog

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph program {")
	fmt.Fprintln(bw, "\trankdir=LR;")
	fmt.Fprintln(bw, "\tnode [shape=box, fontname=\"monospace\"];")
	fmt.Fprintf(bw, "\tlabel=%q;\n", re.pattern)
	fmt.Fprintln(bw, "\tstart [shape=point];")
	fmt.Fprintf(bw, "\tstart -> i%d;\n", prog.Start)

	reachable := reachableInsts(prog)
	for pc := range prog.Inst {
		if !reachable[pc] {
			continue
		}
		inst := &prog.Inst[pc]
		label, _, _ := strings.Cut(inst.String(), " -> ")
		shape := ""
		if inst.Op == syntax.InstMatch {
			shape = ", shape=doublecircle"
		}
		fmt.Fprintf(bw, "\ti%d [label=%q%s];\n", pc, fmt.Sprintf("%d: %s", pc, label), shape)

		switch inst.Op {
		case syntax.InstMatch, syntax.InstFail:
		case syntax.InstAlt, syntax.InstAltMatch:
			fmt.Fprintf(bw, "\ti%d -> i%d;\n", pc, inst.Out)
			fmt.Fprintf(bw, "\ti%d -> i%d [style=dashed];\n", pc, inst.Arg)
		default:
			fmt.Fprintf(bw, "\ti%d -> i%d;\n", pc, inst.Out)
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func reachableInsts(prog *syntax.Prog) []bool {
	seen := make([]bool, len(prog.Inst))
	stack := []uint32{uint32(prog.Start)}
	for len(stack) > 0 {
		pc := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[pc] {
			continue
		}
		seen[pc] = true
		inst := &prog.Inst[pc]
		switch inst.Op {
		case syntax.InstMatch, syntax.InstFail:
		case syntax.InstAlt, syntax.InstAltMatch:
			stack = append(stack, inst.Out, inst.Arg)
		default:
			stack = append(stack, inst.Out)
		}
	}
	return seen
}
