package live

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/imurecv/pkg/metrics"
	"github.com/robotalks/imurecv/pkg/receiver"
	"github.com/robotalks/imurecv/pkg/telemetry"
)

func mustRecord(t *testing.T, line string) *telemetry.Record {
	rec, err := telemetry.Parse("10:00:00.250", line)
	require.NoError(t, err)
	return rec
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	stats := receiver.Stats{Lines: 3, Rows: 2}
	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg, func() receiver.Stats { return stats }))
	s := &Server{
		Hub:      NewHub(),
		Gatherer: reg,
		Stats:    func() receiver.Stats { return stats },
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return s, srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
}

func TestHubBroadcast(t *testing.T) {
	s, srv := newTestServer(t)
	feed1, err := Dial(wsURL(srv))
	require.NoError(t, err)
	defer feed1.Close()
	feed2, err := Dial(wsURL(srv))
	require.NoError(t, err)
	defer feed2.Close()
	require.Eventually(t, func() bool { return s.Hub.Clients() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, s.Hub.HandleRecord(context.Background(), mustRecord(t, "1,2,3,4,5,6,STILL")))
	require.NoError(t, s.Hub.HandleRecord(context.Background(), mustRecord(t, "1,2,3,4,5,6,MOTION,x")))

	for _, feed := range []*Feed{feed1, feed2} {
		msg, err := feed.Next()
		require.NoError(t, err)
		assert.EqualValues(t, 1, msg.Seq)
		assert.Equal(t, "10:00:00.250", msg.Timestamp)
		assert.Equal(t, "STILL", msg.Record().Field(telemetry.Motion))
		msg, err = feed.Next()
		require.NoError(t, err)
		assert.EqualValues(t, 2, msg.Seq)
		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "MOTION", "x"}, msg.Fields)
	}

	feed1.Close()
	require.Eventually(t, func() bool { return s.Hub.Clients() == 1 }, time.Second, 10*time.Millisecond)
}

func TestHubDropsForSlowClient(t *testing.T) {
	h := &Hub{BufferSize: 1}
	ch := h.subscribe()
	rec := mustRecord(t, "1,2,3,4,5,6,STILL")
	require.NoError(t, h.HandleRecord(context.Background(), rec))
	require.NoError(t, h.HandleRecord(context.Background(), rec))
	assert.EqualValues(t, 1, h.Dropped())
	assert.Len(t, ch, 1)

	require.NoError(t, h.Close())
	_, ok := <-ch
	assert.True(t, ok)
	_, ok = <-ch
	assert.False(t, ok)
	assert.Nil(t, h.subscribe())
	h.unsubscribe(ch)
	assert.Equal(t, 0, h.Clients())
}

func TestHealthz(t *testing.T) {
	s, srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health Health
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, s.Hub.Clients(), health.Clients)
	require.NotNil(t, health.Stats)
	assert.EqualValues(t, 2, health.Stats.Rows)
}

func TestRoutes(t *testing.T) {
	_, srv := newTestServer(t)
	testCases := []struct {
		method, path string
		status       int
		body         string
	}{
		{http.MethodGet, "/metrics", http.StatusOK, "imurecv_rows_total 2"},
		{http.MethodPost, "/healthz", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/nothing", http.StatusNotFound, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, srv.URL+tc.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), tc.body)
		})
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &Server{Hub: NewHub()}
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(ctx, ln)
	}()

	feed, err := Dial("ws://" + ln.Addr().String() + "/live")
	require.NoError(t, err)
	defer feed.Close()
	require.Eventually(t, func() bool { return s.Hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	_, err = feed.Next()
	assert.Error(t, err)
}
