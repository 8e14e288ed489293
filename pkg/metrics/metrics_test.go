package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/imurecv/pkg/receiver"
)

func TestRegister(t *testing.T) {
	stats := receiver.Stats{Lines: 5, Rows: 3, Skipped: 2, Empty: 7, ReadErrors: 1}
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg, func() receiver.Stats { return stats }))

	families, err := reg.Gather()
	require.NoError(t, err)
	values := make(map[string]float64)
	for _, mf := range families {
		require.Len(t, mf.GetMetric(), 1)
		values[mf.GetName()] = mf.GetMetric()[0].GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{
		"imurecv_lines_total":       5,
		"imurecv_rows_total":        3,
		"imurecv_skipped_total":     2,
		"imurecv_empty_reads_total": 7,
		"imurecv_read_errors_total": 1,
	}, values)

	stats.Rows = 4
	families, err = reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "imurecv_rows_total" {
			assert.Equal(t, 4.0, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
}

func TestRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	stats := func() receiver.Stats { return receiver.Stats{} }
	require.NoError(t, Register(reg, stats))
	require.Error(t, Register(reg, stats))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg, func() receiver.Stats {
		return receiver.Stats{Rows: 42}
	}))
	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "imurecv_rows_total 42")
}
