package live

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/imurecv/pkg/framework"
	"github.com/robotalks/imurecv/pkg/metrics"
	"github.com/robotalks/imurecv/pkg/receiver"
)

// Server serves the live feed, metrics and a health check over HTTP.
type Server struct {
	Addr      string
	Hub       *Hub
	Gatherer  prometheus.Gatherer
	Stats     metrics.StatsFunc
	AccessLog io.Writer
}

// Health is the /healthz response.
type Health struct {
	Status  string          `json:"status"`
	Clients int             `json:"clients"`
	Stats   *receiver.Stats `json:"stats,omitempty"`
}

// Router builds the routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	if s.Hub != nil {
		r.Handle("/live", websocket.Server{Handler: s.Hub.Serve}).Methods(http.MethodGet)
	}
	if s.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(s.Gatherer)).Methods(http.MethodGet)
	}
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	return r
}

// Handler wraps the router with panic recovery and access logging.
func (s *Server) Handler() http.Handler {
	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(s.Router())
	if s.AccessLog != nil {
		h = handlers.LoggingHandler(s.AccessLog, h)
	}
	return h
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	health := Health{Status: "ok"}
	if s.Hub != nil {
		health.Clients = s.Hub.Clients()
	}
	if s.Stats != nil {
		stats := s.Stats()
		health.Stats = &stats
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&health)
}

// Run implements framework.Runnable.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler()}
	closer := fx.CloserFunc(func() error {
		if s.Hub != nil {
			s.Hub.Close()
		}
		return srv.Close()
	})
	glog.Infof("http listening on %s", ln.Addr())
	return fx.RunWithContextCloser(ctx, closer, func() error {
		if err := srv.Serve(ln); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}
