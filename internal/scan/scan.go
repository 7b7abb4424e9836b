// Package scan finds definite absent-value and nil-pointer dereferences in Go
// packages.
//
// Packages are loaded with go/packages and lowered to SSA. Each function is
// then walked block by block looking for two things:
//
//   - NIL001: optional.Option.MustGet called on a receiver that is always
//     None (a call to optional.None, a zero Option, or a phi of those).
//   - NIL002: a load, store, field or array access through a pointer that is
//     always nil.
//
// Both rules also fire on calls that pass such a value to a function whose
// body unconditionally dereferences the corresponding parameter.
package scan

import (
	"context"
	"fmt"
	"go/token"
	"go/types"
	"log/slog"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// ToolVersion is stamped into reports and cache metadata.
const ToolVersion = "0.1.0"

// DefaultOptionalPkg is the import path whose Option type NIL001 tracks.
const DefaultOptionalPkg = "github.com/FredrikPedersen/nullref/optional"

type Rule string

const (
	RuleAbsentValue Rule = "NIL001"
	RuleNilPointer  Rule = "NIL002"
)

// Title is the human-readable name of the rule.
func (r Rule) Title() string {
	switch r {
	case RuleAbsentValue:
		return "absent value dereference"
	case RuleNilPointer:
		return "nil pointer dereference"
	default:
		return string(r)
	}
}

type Finding struct {
	Rule     Rule   `json:"rule" yaml:"rule"`
	Message  string `json:"message" yaml:"message"`
	File     string `json:"file" yaml:"file"`
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column" yaml:"column"`
	Function string `json:"function" yaml:"function"`
}

// Location formats the finding position as file:line:column.
func (f Finding) Location() string {
	return fmt.Sprintf("%s:%d:%d", f.File, f.Line, f.Column)
}

type Report struct {
	Findings    []Finding `json:"findings" yaml:"findings"`
	Packages    []string  `json:"packages" yaml:"packages"`
	GoVersion   string    `json:"go_version" yaml:"go_version"`
	ToolVersion string    `json:"tool_version" yaml:"tool_version"`
}

// Config selects what the scanner loads and reports.
type Config struct {
	OptionalPkg      string // import path of the Option type
	IncludeTests     bool   // load and report _test.go files
	IncludeGenerated bool   // report findings in generated files
}

// LoadError collects the errors go/packages attached to loaded packages.
type LoadError struct {
	Errors []packages.Error
}

func (e *LoadError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return "package errors: " + strings.Join(msgs, "; ")
}

// Scanner runs the nil rules over loaded packages.
type Scanner struct {
	cfg    Config
	logger *slog.Logger
}

func NewScanner(cfg Config, logger *slog.Logger) *Scanner {
	if cfg.OptionalPkg == "" {
		cfg.OptionalPkg = DefaultOptionalPkg
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{cfg: cfg, logger: logger}
}

// Scan loads patterns relative to dir, builds SSA and returns the report.
func (s *Scanner) Scan(ctx context.Context, dir string, patterns []string) (*Report, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedDeps |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo |
			packages.NeedTypesSizes,
		Dir:   dir,
		Tests: s.cfg.IncludeTests,
	}

	s.logger.Debug("loading packages", "dir", dir, "patterns", patterns)
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	var loadErrs []packages.Error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		loadErrs = append(loadErrs, pkg.Errors...)
	})
	if len(loadErrs) > 0 {
		return nil, &LoadError{Errors: loadErrs}
	}

	prog, ssaPkgs := ssautil.AllPackages(pkgs, ssa.InstantiateGenerics)
	prog.Build()

	report := &Report{
		Findings:    []Finding{},
		Packages:    []string{},
		GoVersion:   runtime.Version(),
		ToolVersion: ToolVersion,
	}

	a := &analysis{
		Scanner:   s,
		fset:      prog.Fset,
		summary:   make(map[*ssa.Function]*paramSummary),
		reported:  make(map[string]bool),
		generated: make(map[string]bool),
	}

	seenPkg := make(map[string]bool)
	for _, ssaPkg := range ssaPkgs {
		if ssaPkg == nil {
			continue
		}
		path := ssaPkg.Pkg.Path()
		if !seenPkg[path] {
			seenPkg[path] = true
			report.Packages = append(report.Packages, path)
		}
		for _, fn := range packageFunctions(prog, ssaPkg) {
			a.visitFunction(fn)
		}
	}

	sort.Strings(report.Packages)
	report.Findings = append(report.Findings, a.findings...)
	sortFindings(report.Findings)

	s.logger.Info("scan complete",
		"packages", len(report.Packages),
		"findings", len(report.Findings),
	)
	return report, nil
}

// packageFunctions lists the functions declared in ssaPkg: members, methods
// and every nested anonymous function, in member name order.
func packageFunctions(prog *ssa.Program, ssaPkg *ssa.Package) []*ssa.Function {
	var memberNames []string
	for name := range ssaPkg.Members {
		memberNames = append(memberNames, name)
	}
	sort.Strings(memberNames)

	var fns []*ssa.Function
	fnSeen := make(map[*ssa.Function]bool)
	var add func(fn *ssa.Function)
	add = func(fn *ssa.Function) {
		if fn == nil || fnSeen[fn] {
			return
		}
		fnSeen[fn] = true
		fns = append(fns, fn)
		for _, anon := range fn.AnonFuncs {
			add(anon)
		}
	}

	for _, name := range memberNames {
		if fn, ok := ssaPkg.Members[name].(*ssa.Function); ok {
			add(fn)
		}
	}

	for _, name := range memberNames {
		typMember, ok := ssaPkg.Members[name].(*ssa.Type)
		if !ok {
			continue
		}
		mset := prog.MethodSets.MethodSet(types.NewPointer(typMember.Type()))
		for i := 0; i < mset.Len(); i++ {
			fn := prog.MethodValue(mset.At(i))
			if fn == nil || fn.Package() != ssaPkg {
				continue
			}
			add(fn)
		}
	}
	return fns
}

func sortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
}

// position resolves pos, falling back to the enclosing function.
func position(fset *token.FileSet, pos token.Pos, fn *ssa.Function) token.Position {
	if pos.IsValid() {
		return fset.Position(pos)
	}
	return fset.Position(fn.Pos())
}
