package csvlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/robotalks/imurecv/pkg/telemetry"
)

// ErrBadHeader indicates the file doesn't start with telemetry.Header.
var ErrBadHeader = errors.New("not a telemetry log")

// Summary describes a CSV log.
type Summary struct {
	Path   string         `json:"path"`
	Rows   int            `json:"rows"`
	First  string         `json:"first,omitempty"`
	Last   string         `json:"last,omitempty"`
	Motion map[string]int `json:"motion"`
}

// MotionLabels returns motion labels sorted by name.
func (s *Summary) MotionLabels() []string {
	labels := make([]string, 0, len(s.Motion))
	for label := range s.Motion {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Summarize reads back the log at path.
func Summarize(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Read summarizes a log from r.
func Read(r io.Reader) (*Summary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrBadHeader
	}
	if err != nil {
		return nil, err
	}
	if len(header) < len(telemetry.Header) {
		return nil, ErrBadHeader
	}
	for i, name := range telemetry.Header {
		if header[i] != name {
			return nil, ErrBadHeader
		}
	}
	s := &Summary{Motion: make(map[string]int)}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		s.Rows++
		if s.First == "" {
			s.First = row[0]
		}
		s.Last = row[0]
		if col := telemetry.Motion + 1; col < len(row) {
			s.Motion[row[col]]++
		}
	}
	return s, nil
}
