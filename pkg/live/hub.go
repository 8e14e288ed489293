// Package live streams received records to websocket clients.
package live

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/imurecv/pkg/telemetry"
)

// DefaultBufferSize is the number of messages queued per client.
const DefaultBufferSize = 64

// Message is the JSON document sent for each record.
type Message struct {
	Seq       uint64   `json:"seq"`
	Timestamp string   `json:"timestamp"`
	Fields    []string `json:"fields"`
}

// Record converts the message back to a record.
func (m *Message) Record() *telemetry.Record {
	return &telemetry.Record{Timestamp: m.Timestamp, Fields: m.Fields}
}

// Hub broadcasts records to connected clients. A slow client never
// blocks the receiver: messages are dropped when its buffer is full.
type Hub struct {
	BufferSize int

	lock    sync.Mutex
	clients map[chan []byte]struct{}
	closed  bool
	seq     uint64
	dropped uint64
}

// NewHub creates a Hub.
func NewHub() *Hub {
	return &Hub{BufferSize: DefaultBufferSize}
}

// HandleRecord implements receiver.Sink.
func (h *Hub) HandleRecord(ctx context.Context, rec *telemetry.Record) error {
	data, err := json.Marshal(&Message{
		Seq:       atomic.AddUint64(&h.seq, 1),
		Timestamp: rec.Timestamp,
		Fields:    rec.Fields,
	})
	if err != nil {
		return err
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	for ch := range h.clients {
		select {
		case ch <- data:
		default:
			h.dropped++
		}
	}
	return nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.clients)
}

// Dropped returns the number of messages not delivered to slow clients.
func (h *Hub) Dropped() uint64 {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.dropped
}

// Close disconnects all clients. Later connections are refused.
func (h *Hub) Close() error {
	h.lock.Lock()
	defer h.lock.Unlock()
	if !h.closed {
		h.closed = true
		for ch := range h.clients {
			close(ch)
		}
		h.clients = nil
	}
	return nil
}

func (h *Hub) subscribe() chan []byte {
	size := h.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.closed {
		return nil
	}
	if h.clients == nil {
		h.clients = make(map[chan []byte]struct{})
	}
	ch := make(chan []byte, size)
	h.clients[ch] = struct{}{}
	return ch
}

func (h *Hub) unsubscribe(ch chan []byte) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

// Serve streams messages to a websocket connection until either side
// closes it.
func (h *Hub) Serve(conn *websocket.Conn) {
	defer conn.Close()
	ch := h.subscribe()
	if ch == nil {
		return
	}
	defer h.unsubscribe(ch)
	glog.V(1).Infof("live client %s connected", conn.Request().RemoteAddr)

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		var discard []byte
		for websocket.Message.Receive(conn, &discard) == nil {
		}
	}()

	for {
		select {
		case data, ok := <-ch:
			if !ok {
				return
			}
			if err := websocket.Message.Send(conn, string(data)); err != nil {
				glog.V(1).Infof("live client %s: %v", conn.Request().RemoteAddr, err)
				return
			}
		case <-gone:
			glog.V(1).Infof("live client %s disconnected", conn.Request().RemoteAddr)
			return
		}
	}
}
