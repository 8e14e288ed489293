package csvlog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type memFile struct {
	bytes.Buffer
	closed int
}

func (f *memFile) Close() error {
	f.closed++
	return nil
}

type failingFile struct {
	memFile
	failAfter int
}

func (f *failingFile) Write(p []byte) (int, error) {
	if f.failAfter <= 0 {
		return 0, errors.New("disk full")
	}
	f.failAfter--
	return f.memFile.Write(p)
}

const headerLine = "Timestamp,AccelX,AccelY,AccelZ,GyroX,GyroY,GyroZ,Motion\r\n"

func TestWriterHeaderOnce(t *testing.T) {
	var f memFile
	w, err := New(&f, "mem.csv")
	require.NoError(t, err)
	require.Equal(t, headerLine, f.String())

	require.NoError(t, w.WriteRow([]string{"10:00:00.000", "1", "2", "3", "4", "5", "6", "STILL"}))
	require.NoError(t, w.Flush())
	require.NoError(t, w.WriteRow([]string{"10:00:00.200", "1", "2", "3", "4", "5", "6", "MOTION", "x"}))
	require.NoError(t, w.Flush())
	require.EqualValues(t, 2, w.Rows())

	require.Equal(t, headerLine+
		"10:00:00.000,1,2,3,4,5,6,STILL\r\n"+
		"10:00:00.200,1,2,3,4,5,6,MOTION,x\r\n", f.String())
	require.Equal(t, 1, strings.Count(f.String(), "Timestamp"))

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	require.Equal(t, 1, f.closed)
	require.Equal(t, os.ErrClosed, w.WriteRow([]string{"x"}))
}

func TestWriterFlushError(t *testing.T) {
	f := &failingFile{failAfter: 1}
	w, err := New(f, "mem.csv")
	require.NoError(t, err)
	require.NoError(t, w.WriteRow([]string{"a"}))
	require.Error(t, w.Flush())
}

func TestWriterHeaderError(t *testing.T) {
	_, err := New(&failingFile{}, "mem.csv")
	require.Error(t, err)
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	w, err := Create(path)
	require.NoError(t, err)
	require.Equal(t, path, w.Path())
	require.NoError(t, w.WriteRow([]string{"10:00:00.000", "1", "2", "3", "4", "5", "6", "STILL"}))
	require.NoError(t, w.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, headerLine+"10:00:00.000,1,2,3,4,5,6,STILL\r\n", string(data))
	require.NoError(t, w.Close())

	_, err = Create(filepath.Join(t.TempDir(), "missing", "log.csv"))
	require.Error(t, err)
}
