package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleEncodeDecode(t *testing.T) {
	rec, err := Parse("10:11:12.131", "1.02,-0.98,9.81,0.1,-0.2,0.0,STILL,x")
	require.NoError(t, err)
	s := rec.Sample("session-1", "glove", 3)
	require.Equal(t, "STILL", s.Motion)
	require.Equal(t, []string{"x"}, s.Extra)
	require.Equal(t, rec.Fields, s.Fields())

	data, err := s.Encode()
	require.NoError(t, err)
	decoded, err := DecodeSample(data)
	require.NoError(t, err)
	require.Equal(t, s.Session, decoded.Session)
	require.Equal(t, s.Source, decoded.Source)
	require.Equal(t, s.Seq, decoded.Seq)
	require.Equal(t, s.Timestamp, decoded.Timestamp)
	require.Equal(t, rec.Fields, decoded.Fields())
}

func TestDecodeSampleBadData(t *testing.T) {
	_, err := DecodeSample([]byte{0xff, 0xff, 0xff})
	require.Error(t, err)
}
