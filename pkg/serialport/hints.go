package serialport

import (
	"path/filepath"
	"sort"
)

// Hints lists common device names per OS, printed when the port can't be opened.
func Hints() []string {
	return []string{
		"Linux: /dev/ttyUSB0, /dev/ttyACM0",
		"Windows: COM1, COM2, COM3, etc.",
		"macOS: /dev/cu.usbserial-*",
	}
}

// CandidatePatterns are globbed by Candidates.
var CandidatePatterns = []string{
	"/dev/ttyUSB*",
	"/dev/ttyACM*",
	"/dev/cu.usbserial-*",
	"/dev/cu.usbmodem*",
}

// Candidates returns existing device nodes matching CandidatePatterns.
func Candidates() []string {
	return candidates(CandidatePatterns)
}

func candidates(patterns []string) []string {
	var found []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		found = append(found, matches...)
	}
	sort.Strings(found)
	return found
}
