package scan

import (
	"errors"
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"

	fb "github.com/FredrikPedersen/nullref/internal/scan/fb/nilscan"
)

// ErrShortPayload is returned when a buffer is too small to hold a report.
var ErrShortPayload = errors.New("report payload too short")

// BuildReport converts a Report to FlatBuffers binary format.
// The tree is built bottom-up: strings -> findings -> vectors -> root.
func BuildReport(report *Report) []byte {
	builder := flatbuffers.NewBuilder(1024)

	findingOffsets := make([]flatbuffers.UOffsetT, len(report.Findings))
	for i := len(report.Findings) - 1; i >= 0; i-- {
		findingOffsets[i] = buildFinding(builder, &report.Findings[i])
	}
	fb.ReportStartFindingsVector(builder, len(findingOffsets))
	for i := len(findingOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(findingOffsets[i])
	}
	findingsVec := builder.EndVector(len(findingOffsets))

	packageOffsets := make([]flatbuffers.UOffsetT, len(report.Packages))
	for i := len(report.Packages) - 1; i >= 0; i-- {
		packageOffsets[i] = builder.CreateString(report.Packages[i])
	}
	fb.ReportStartPackagesVector(builder, len(packageOffsets))
	for i := len(packageOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(packageOffsets[i])
	}
	packagesVec := builder.EndVector(len(packageOffsets))

	goVersionOffset := builder.CreateString(report.GoVersion)
	toolVersionOffset := builder.CreateString(report.ToolVersion)

	fb.ReportStart(builder)
	fb.ReportAddFindings(builder, findingsVec)
	fb.ReportAddPackages(builder, packagesVec)
	fb.ReportAddGoVersion(builder, goVersionOffset)
	fb.ReportAddToolVersion(builder, toolVersionOffset)
	root := fb.ReportEnd(builder)

	fb.FinishReportBuffer(builder, root)
	return builder.FinishedBytes()
}

func buildFinding(builder *flatbuffers.Builder, f *Finding) flatbuffers.UOffsetT {
	messageOffset := builder.CreateString(f.Message)
	fileOffset := builder.CreateString(f.File)
	functionOffset := builder.CreateString(f.Function)

	fb.FindingStart(builder)
	fb.FindingAddRule(builder, mapRule(f.Rule))
	fb.FindingAddMessage(builder, messageOffset)
	fb.FindingAddFile(builder, fileOffset)
	fb.FindingAddLine(builder, int32(f.Line))
	fb.FindingAddColumn(builder, int32(f.Column))
	fb.FindingAddFunction(builder, functionOffset)
	return fb.FindingEnd(builder)
}

// DecodeReport reads a Report back from the bytes produced by BuildReport.
// Truncated or corrupt input makes the flatbuffers accessors panic; the
// panic is turned into an error.
func DecodeReport(buf []byte) (report *Report, err error) {
	if len(buf) < flatbuffers.SizeUOffsetT {
		return nil, ErrShortPayload
	}
	defer func() {
		if r := recover(); r != nil {
			report, err = nil, fmt.Errorf("decoding report: %v", r)
		}
	}()

	root := fb.GetRootAsReport(buf, 0)
	report = &Report{
		Findings:    make([]Finding, 0, root.FindingsLength()),
		Packages:    make([]string, 0, root.PackagesLength()),
		GoVersion:   string(root.GoVersion()),
		ToolVersion: string(root.ToolVersion()),
	}

	var f fb.Finding
	for i := 0; i < root.FindingsLength(); i++ {
		if !root.Findings(&f, i) {
			return nil, fmt.Errorf("decoding report: missing finding %d", i)
		}
		report.Findings = append(report.Findings, Finding{
			Rule:     unmapRule(f.Rule()),
			Message:  string(f.Message()),
			File:     string(f.File()),
			Line:     int(f.Line()),
			Column:   int(f.Column()),
			Function: string(f.Function()),
		})
	}
	for i := 0; i < root.PackagesLength(); i++ {
		report.Packages = append(report.Packages, string(root.Packages(i)))
	}
	return report, nil
}

func mapRule(r Rule) fb.Rule {
	switch r {
	case RuleNilPointer:
		return fb.RuleNilPointerDereference
	default:
		return fb.RuleAbsentValueDereference
	}
}

func unmapRule(r fb.Rule) Rule {
	switch r {
	case fb.RuleNilPointerDereference:
		return RuleNilPointer
	default:
		return RuleAbsentValue
	}
}
