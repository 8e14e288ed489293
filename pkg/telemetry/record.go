package telemetry

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FieldCount is the minimum number of fields in a telemetry line.
const FieldCount = 7

// Field delimiter on the wire.
const Delimiter = ","

// TimestampLayout formats capture timestamps as HH:MM:SS.mmm in local time.
const TimestampLayout = "15:04:05.000"

// Header is the first row of every CSV log.
var Header = []string{
	"Timestamp",
	"AccelX", "AccelY", "AccelZ",
	"GyroX", "GyroY", "GyroZ",
	"Motion",
}

// Field indices within Record.Fields.
const (
	AccelX = iota
	AccelY
	AccelZ
	GyroX
	GyroY
	GyroZ
	Motion
)

// Record is one parsed telemetry line. Fields are kept verbatim,
// including any beyond FieldCount.
type Record struct {
	Timestamp string
	Fields    []string
}

// ParseError indicates a line is not a telemetry record.
type ParseError struct {
	Line   string
	Fields int
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("expect at least %d fields, got %d: %q", FieldCount, e.Fields, e.Line)
}

// FormatTimestamp formats t with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Parse splits line into a Record captured at timestamp.
func Parse(timestamp, line string) (*Record, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) < FieldCount {
		return nil, &ParseError{Line: line, Fields: len(fields)}
	}
	return &Record{Timestamp: timestamp, Fields: fields}, nil
}

// Field returns the field at index, or empty string if absent.
func (r *Record) Field(index int) string {
	if index < 0 || index >= len(r.Fields) {
		return ""
	}
	return r.Fields[index]
}

// CSVRow returns the row written to the CSV log.
func (r *Record) CSVRow() []string {
	row := make([]string, 0, len(r.Fields)+1)
	row = append(row, r.Timestamp)
	return append(row, r.Fields...)
}

// String returns the original line.
func (r *Record) String() string {
	return strings.Join(r.Fields, Delimiter)
}

// FileName returns the CSV log name for a session started at t.
func FileName(t time.Time) string {
	return "mpu6050_data_" + t.Format("20060102_150405") + ".csv"
}

// FilePath joins dir and the CSV log name for a session started at t.
func FilePath(dir string, t time.Time) string {
	if dir == "" {
		return FileName(t)
	}
	return filepath.Join(dir, FileName(t))
}
