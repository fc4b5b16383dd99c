package ingestor

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	lj "github.com/elastic/go-lumber/lj"
	srv2 "github.com/elastic/go-lumber/server/v2"
)

var (
	errMissingKey = errors.New("missing key field")
	errInvalidKey = errors.New("invalid key")
)

// Record is one keyed event received from a lumberjack client
type Record struct {
	Key       float64    `json:"key"`
	Message   string     `json:"message,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Seq       uint64     `json:"seq"` // arrival order, used to check stability
}

// --- TCP Ingestor using go-lumber v2 ---

type TCPIngestor struct {
	listener    net.Listener
	readTimeout time.Duration // for server
	events      chan *lj.Batch
	server      *srv2.Server
	seq         atomic.Uint64
	drained     atomic.Bool // set once ReadBatch sees the closed channel
}

func NewTCPIngestor(addr string, readTimeout time.Duration) (*TCPIngestor, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return &TCPIngestor{
		listener:    ln,
		readTimeout: readTimeout,
		events:      make(chan *lj.Batch, 1000),
	}, nil
}

// Addr returns the address the ingestor listens on
func (ing *TCPIngestor) Addr() net.Addr {
	return ing.listener.Addr()
}

// Accept starts the lumberjack v2 Server.
func (ing *TCPIngestor) Accept() error {
	srv, err := srv2.NewWithListener(
		ing.listener,
		srv2.Timeout(ing.readTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create lumberjack server: %w", err)
	}
	ing.server = srv

	// Pull batches off ReceiveChan and ack them.
	go func() {
		for batch := range ing.server.ReceiveChan() {
			ing.events <- batch
			batch.ACK()
		}
		close(ing.events)
	}()

	return nil
}

// parseEvent reads the numeric key, the optional message and the optional
// @timestamp of an event.
func parseEvent(evt map[string]interface{}, out *Record) error {
	raw, ok := evt["key"]
	if !ok {
		return errMissingKey
	}
	key, err := parseKey(raw)
	if err != nil {
		return err
	}
	out.Key = key

	if msg, ok := evt["message"].(string); ok {
		out.Message = msg
	}
	if ts, ok := evt["@timestamp"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			t = t.UTC()
			out.Timestamp = &t
		}
	}
	return nil
}

func parseKey(raw interface{}) (float64, error) {
	var key float64
	switch v := raw.(type) {
	case float64:
		key = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errInvalidKey, v)
		}
		key = f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errInvalidKey, v)
		}
		key = f
	case int:
		key = float64(v)
	case int64:
		key = float64(v)
	default:
		return 0, fmt.Errorf("%w: %T", errInvalidKey, raw)
	}
	if math.IsNaN(key) || math.IsInf(key, 0) {
		return 0, fmt.Errorf("%w: %v", errInvalidKey, key)
	}
	return key, nil
}

// ReadBatch drains every batch received so far and appends its records to
// dst. Events that are not maps or carry no usable key are skipped and
// counted.
func (ing *TCPIngestor) ReadBatch(dst []Record) ([]Record, int, error) {
	skipped := 0

	for {
		select {
		case batch, ok := <-ing.events:
			if !ok {
				ing.drained.Store(true)
				return dst, skipped, nil
			}
			for _, evt := range batch.Events {
				m, ok := evt.(map[string]interface{})
				if !ok {
					skipped++
					continue
				}
				var entry Record
				if err := parseEvent(m, &entry); err != nil {
					skipped++
					continue
				}
				entry.Seq = ing.seq.Add(1) - 1
				dst = append(dst, entry)
			}
		default:
			// Channel is empty, return what we have
			return dst, skipped, nil
		}
	}
}

// IsClosed reports whether the server is gone and every received batch
// has been read. It never consumes from the event channel.
func (ing *TCPIngestor) IsClosed() bool {
	if ing.server == nil {
		return true
	}
	return ing.drained.Load()
}

// Close shuts down the server and listener.
func (ing *TCPIngestor) Close() error {
	if ing.server != nil {
		ing.server.Close()
	}
	return ing.listener.Close()
}
