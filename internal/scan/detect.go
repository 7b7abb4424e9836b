package scan

import (
	"fmt"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/ssa"
)

// analysis is the per-Scan state: parameter summaries and emitted findings.
type analysis struct {
	*Scanner
	fset      *token.FileSet
	summary   map[*ssa.Function]*paramSummary
	findings  []Finding
	reported  map[string]bool
	generated map[string]bool
}

// paramSummary records which parameters a function dereferences on every
// path to a return.
type paramSummary struct {
	absent map[int]bool // MustGet on the Option parameter
	nilPtr map[int]bool // load/store/field access through the pointer parameter
}

func (a *analysis) visitFunction(fn *ssa.Function) {
	if fn.Blocks == nil {
		return // external function, no body
	}
	if a.skipFile(a.fset.Position(fn.Pos()).Filename) {
		return
	}

	for _, block := range fn.Blocks {
		for _, instr := range block.Instrs {
			switch v := instr.(type) {
			case *ssa.Call:
				a.checkCall(fn, v)
			case *ssa.UnOp:
				if v.Op == token.MUL && definitelyNil(v.X, nil) {
					a.report(fn, v.Pos(), RuleNilPointer,
						fmt.Sprintf("load through nil %s", v.X.Type()))
				}
			case *ssa.FieldAddr:
				if definitelyNil(v.X, nil) {
					a.report(fn, v.Pos(), RuleNilPointer,
						fmt.Sprintf("field %s accessed through nil %s", fieldName(v), v.X.Type()))
				}
			case *ssa.IndexAddr:
				if isPointer(v.X.Type()) && definitelyNil(v.X, nil) {
					a.report(fn, v.Pos(), RuleNilPointer,
						fmt.Sprintf("element accessed through nil %s", v.X.Type()))
				}
			case *ssa.Store:
				if definitelyNil(v.Addr, nil) {
					a.report(fn, v.Pos(), RuleNilPointer,
						fmt.Sprintf("store through nil %s", v.Addr.Type()))
				}
			}
		}
	}
}

func (a *analysis) checkCall(fn *ssa.Function, call *ssa.Call) {
	callee := call.Call.StaticCallee()
	if callee == nil {
		return
	}
	args := call.Call.Args

	if a.isMustGet(callee) && len(args) > 0 && a.definitelyAbsent(args[0], nil) {
		a.report(fn, call.Pos(), RuleAbsentValue,
			fmt.Sprintf("MustGet called on an absent %s", args[0].Type()))
		return
	}

	sum := a.summarize(callee)
	for i, arg := range args {
		switch {
		case sum.absent[i] && a.definitelyAbsent(arg, nil):
			a.report(fn, call.Pos(), RuleAbsentValue,
				fmt.Sprintf("absent %s passed to %s as %s, which requires a value", arg.Type(), callee.Name(), paramName(callee, i)))
		case sum.nilPtr[i] && definitelyNil(arg, nil):
			a.report(fn, call.Pos(), RuleNilPointer,
				fmt.Sprintf("nil %s passed to %s as %s, which dereferences it", arg.Type(), callee.Name(), paramName(callee, i)))
		}
	}
}

func (a *analysis) report(fn *ssa.Function, pos token.Pos, rule Rule, msg string) {
	p := position(a.fset, pos, fn)
	if a.skipFile(p.Filename) {
		return
	}
	// One call can pass several nil arguments; the message tells them apart.
	key := fmt.Sprintf("%s:%d:%d:%s:%s", p.Filename, p.Line, p.Column, rule, msg)
	if a.reported[key] {
		return
	}
	a.reported[key] = true

	a.logger.Debug("finding", "rule", rule, "pos", p.String(), "function", fn.String())
	a.findings = append(a.findings, Finding{
		Rule:     rule,
		Message:  msg,
		File:     p.Filename,
		Line:     p.Line,
		Column:   p.Column,
		Function: fn.String(),
	})
}

func (a *analysis) skipFile(filename string) bool {
	if filename == "" {
		return false
	}
	if !a.cfg.IncludeTests && strings.HasSuffix(filename, "_test.go") {
		return true
	}
	if a.cfg.IncludeGenerated {
		return false
	}
	gen, ok := a.generated[filename]
	if !ok {
		gen = IsGeneratedFile(filename)
		a.generated[filename] = gen
	}
	return gen
}

// summarize computes which parameters fn dereferences unconditionally.
// Recursive calls see an empty, in-progress summary.
func (a *analysis) summarize(fn *ssa.Function) *paramSummary {
	if sum, ok := a.summary[fn]; ok {
		return sum
	}
	sum := &paramSummary{absent: map[int]bool{}, nilPtr: map[int]bool{}}
	a.summary[fn] = sum
	if fn.Blocks == nil || len(fn.Params) == 0 {
		return sum
	}

	paramIndex := make(map[ssa.Value]int, len(fn.Params))
	for i, p := range fn.Params {
		paramIndex[p] = i
	}
	returns := returnBlocks(fn)

	for _, block := range fn.Blocks {
		if !dominatesAll(block, returns) {
			continue
		}
		for _, instr := range block.Instrs {
			switch v := instr.(type) {
			case *ssa.Call:
				callee := v.Call.StaticCallee()
				if callee == nil {
					continue
				}
				if a.isMustGet(callee) && len(v.Call.Args) > 0 {
					if i, ok := paramIndex[v.Call.Args[0]]; ok {
						sum.absent[i] = true
					}
					continue
				}
				inner := a.summarize(callee)
				for j, arg := range v.Call.Args {
					i, ok := paramIndex[arg]
					if !ok {
						continue
					}
					if inner.absent[j] {
						sum.absent[i] = true
					}
					if inner.nilPtr[j] {
						sum.nilPtr[i] = true
					}
				}
			case *ssa.UnOp:
				if v.Op == token.MUL {
					markParam(sum.nilPtr, paramIndex, v.X)
				}
			case *ssa.FieldAddr:
				markParam(sum.nilPtr, paramIndex, v.X)
			case *ssa.IndexAddr:
				if isPointer(v.X.Type()) {
					markParam(sum.nilPtr, paramIndex, v.X)
				}
			case *ssa.Store:
				markParam(sum.nilPtr, paramIndex, v.Addr)
			}
		}
	}
	return sum
}

func markParam(set map[int]bool, paramIndex map[ssa.Value]int, v ssa.Value) {
	if i, ok := paramIndex[v]; ok {
		set[i] = true
	}
}

func returnBlocks(fn *ssa.Function) []*ssa.BasicBlock {
	var out []*ssa.BasicBlock
	for _, b := range fn.Blocks {
		if len(b.Instrs) == 0 {
			continue
		}
		if _, ok := b.Instrs[len(b.Instrs)-1].(*ssa.Return); ok {
			out = append(out, b)
		}
	}
	return out
}

// dominatesAll reports whether b lies on every path to the given blocks.
// With no return blocks only the entry block qualifies.
func dominatesAll(b *ssa.BasicBlock, targets []*ssa.BasicBlock) bool {
	if len(targets) == 0 {
		return b.Index == 0
	}
	for _, t := range targets {
		if !b.Dominates(t) {
			return false
		}
	}
	return true
}

// definitelyAbsent reports whether v is None on every path.
func (a *analysis) definitelyAbsent(v ssa.Value, seen map[ssa.Value]bool) bool {
	switch v := v.(type) {
	case *ssa.Call:
		return a.isOptionalFunc(v.Call.StaticCallee(), "None")
	case *ssa.Const:
		return v.Value == nil && a.isOptionType(v.Type())
	case *ssa.Phi:
		if seen == nil {
			seen = make(map[ssa.Value]bool)
		}
		if seen[v] {
			return true
		}
		seen[v] = true
		for _, edge := range v.Edges {
			if !a.definitelyAbsent(edge, seen) {
				return false
			}
		}
		return len(v.Edges) > 0
	default:
		return false
	}
}

// definitelyNil reports whether the pointer v is nil on every path.
func definitelyNil(v ssa.Value, seen map[ssa.Value]bool) bool {
	switch v := v.(type) {
	case *ssa.Const:
		return v.IsNil() && isPointer(v.Type())
	case *ssa.Phi:
		if seen == nil {
			seen = make(map[ssa.Value]bool)
		}
		if seen[v] {
			return true
		}
		seen[v] = true
		for _, edge := range v.Edges {
			if !definitelyNil(edge, seen) {
				return false
			}
		}
		return len(v.Edges) > 0
	default:
		return false
	}
}

func (a *analysis) isMustGet(fn *ssa.Function) bool {
	if !a.isOptionalFunc(fn, "MustGet") {
		return false
	}
	recv := fn.Signature.Recv()
	return recv != nil && a.isOptionType(recv.Type())
}

// isOptionalFunc matches fn, or the generic function it instantiates,
// against name in the configured optional package.
func (a *analysis) isOptionalFunc(fn *ssa.Function, name string) bool {
	if fn == nil {
		return false
	}
	if origin := fn.Origin(); origin != nil {
		fn = origin
	}
	obj := fn.Object()
	if obj == nil || obj.Name() != name || obj.Pkg() == nil {
		return false
	}
	return obj.Pkg().Path() == a.cfg.OptionalPkg
}

func (a *analysis) isOptionType(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Name() == "Option" && obj.Pkg() != nil && obj.Pkg().Path() == a.cfg.OptionalPkg
}

func isPointer(t types.Type) bool {
	_, ok := t.Underlying().(*types.Pointer)
	return ok
}

// paramName names argument i of a call to fn; methods count the receiver
// as argument 0.
func paramName(fn *ssa.Function, i int) string {
	if i < len(fn.Params) && fn.Params[i].Name() != "" && fn.Params[i].Name() != "_" {
		return fn.Params[i].Name()
	}
	return fmt.Sprintf("argument %d", i+1)
}

func fieldName(v *ssa.FieldAddr) string {
	ptr, ok := v.X.Type().Underlying().(*types.Pointer)
	if !ok {
		return fmt.Sprintf("#%d", v.Field)
	}
	st, ok := ptr.Elem().Underlying().(*types.Struct)
	if !ok || v.Field >= st.NumFields() {
		return fmt.Sprintf("#%d", v.Field)
	}
	return st.Field(v.Field).Name()
}
