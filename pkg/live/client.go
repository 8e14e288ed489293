package live

import (
	"net/url"

	"golang.org/x/net/websocket"
)

// DefaultURL is where the receiver serves the live feed by default.
const DefaultURL = "ws://localhost:8080/live"

// Feed reads live messages from a receiver.
type Feed struct {
	conn *websocket.Conn
}

// Dial connects to the live feed at feedURL.
func Dial(feedURL string) (*Feed, error) {
	u, err := url.Parse(feedURL)
	if err != nil {
		return nil, err
	}
	origin := &url.URL{Scheme: "http", Host: u.Host}
	if u.Scheme == "wss" {
		origin.Scheme = "https"
	}
	conn, err := websocket.Dial(feedURL, "", origin.String())
	if err != nil {
		return nil, err
	}
	return &Feed{conn: conn}, nil
}

// Next blocks until the next message arrives.
func (f *Feed) Next() (*Message, error) {
	var msg Message
	if err := websocket.JSON.Receive(f.conn, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Close implements io.Closer.
func (f *Feed) Close() error {
	return f.conn.Close()
}
