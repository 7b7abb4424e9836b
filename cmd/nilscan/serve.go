package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/FredrikPedersen/nullref/internal/scan"
)

type Request struct {
	Command string          `json:"command"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type ScanParams struct {
	Dir      string   `json:"dir"`
	Patterns []string `json:"patterns"`
}

// serve answers newline-delimited JSON requests read from r until EOF.
// Commands: ping, scan, version.
func serve(ctx context.Context, r io.Reader, w io.Writer, scanner *scan.Scanner) error {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	encoder := json.NewEncoder(w)

	for lines.Scan() {
		line := lines.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := encoder.Encode(handle(ctx, line, scanner)); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	return lines.Err()
}

func handle(ctx context.Context, line []byte, scanner *scan.Scanner) Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return Response{Error: fmt.Sprintf("invalid request: %v", err)}
	}

	switch req.Command {
	case "ping":
		return Response{Success: true, Data: map[string]string{
			"status":  "ok",
			"version": scan.ToolVersion,
		}}

	case "scan":
		var params ScanParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				return Response{Error: fmt.Sprintf("invalid scan params: %v", err)}
			}
		}
		if params.Dir == "" {
			params.Dir = "."
		}
		if len(params.Patterns) == 0 {
			params.Patterns = []string{"./..."}
		}
		report, err := scanner.Scan(ctx, params.Dir, params.Patterns)
		if err != nil {
			return Response{Error: fmt.Sprintf("scan error: %v", err)}
		}
		return Response{Success: true, Data: report}

	case "version":
		return Response{Success: true, Data: map[string]string{
			"version": scan.ToolVersion,
		}}

	default:
		return Response{Error: fmt.Sprintf("unknown command: %s", req.Command)}
	}
}
