package scan

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// generatedMarker is the comment that marks generated code, see
// https://go.dev/s/generatedcode.
var generatedMarker = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

// generatedSuffixes are file name endings treated as generated without
// opening the file.
var generatedSuffixes = []string{
	".pb.go",
	".gen.go",
	"_generated.go",
	"_string.go",
	".mock.go",
	"_mock.go",
}

// IsGeneratedFile reports whether the Go file at path is generated code,
// judged by its name or by a marker comment before the package clause.
func IsGeneratedFile(path string) bool {
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if generatedMarker.MatchString(line) {
			return true
		}
		if strings.HasPrefix(line, "package ") {
			break
		}
	}
	return false
}
