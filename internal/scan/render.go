package scan

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Output formats understood by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatFB   = "fb"
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatFB}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Render writes report to w in the given format.
func Render(w io.Writer, report *Report, format string) error {
	switch format {
	case FormatText, "":
		return renderText(w, report)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case FormatFB:
		return WriteFrame(w, BuildReport(report))
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// MaxFrameSize bounds the payload length ReadFrame accepts.
const MaxFrameSize = 64 << 20

// ErrFrameTooLarge is returned by ReadFrame for a length prefix above
// MaxFrameSize.
var ErrFrameTooLarge = errors.New("frame exceeds maximum size")

// WriteFrame writes a length-prefixed payload: [4 bytes LE length][payload].
func WriteFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("write length prefix: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// ReadFrame reads one payload written by WriteFrame.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("read length prefix: %w", err)
	}
	size := binary.LittleEndian.Uint32(lenBuf[:])
	if size > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return payload, nil
}

func renderText(w io.Writer, report *Report) error {
	if len(report.Findings) == 0 {
		_, err := fmt.Fprintf(w, "No findings in %d packages\n", len(report.Packages))
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Rule", "Location", "Function", "Message")
	for _, f := range report.Findings {
		table.Append(
			fmt.Sprintf("%s %s", f.Rule, f.Rule.Title()),
			f.Location(),
			f.Function,
			f.Message,
		)
	}
	table.Render()

	_, err := fmt.Fprintf(w, "\nTotal findings: %d in %d packages\n", len(report.Findings), len(report.Packages))
	return err
}
