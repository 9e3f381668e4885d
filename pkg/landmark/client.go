package landmark

import (
	"DriverGuard/internal/alertness"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var ErrNotConnected = errors.New("landmark service not connected")

type IClient interface {
	Detect(ctx context.Context, frame []byte) (alertness.Frame, error)
	IsConnected() bool
	Reconnect() error
	Close()
}

type client struct {
	url          string
	conn         *websocket.Conn
	mu           sync.Mutex
	log          *logrus.Logger
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func New(log *logrus.Logger) IClient {
	return NewClient(os.Getenv("LANDMARK_SERVICE_URL"), log)
}

func NewClient(url string, log *logrus.Logger) IClient {
	c := &client{
		url:          url,
		log:          log,
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}

	go c.connectInBackground()

	return c
}

func (c *client) connectInBackground() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return
	}
	if err := c.reconnectLocked(); err != nil {
		c.log.WithError(err).Warn("Initial connection to landmark service failed, will retry on demand")
		return
	}
	c.log.WithField("url", c.url).Info("Connected to landmark service")
}

func (c *client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn != nil
}

func (c *client) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.reconnectLocked()
}

func (c *client) reconnectLocked() error {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	if c.url == "" {
		return fmt.Errorf("LANDMARK_SERVICE_URL not configured")
	}

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		if err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout)); err != nil {
			c.log.WithError(err).Debug("Error sending pong to landmark service")
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive(conn)

	return nil
}

func (c *client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *client) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.WithError(err).Warn("Ping to landmark service failed, marking connection as dead")
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
	}
}

// Detect sends one encoded frame and waits for its landmarks. The connection
// lock is held for the whole round trip so replies cannot interleave between
// callers.
func (c *client) Detect(ctx context.Context, frame []byte) (alertness.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		if err := c.reconnectLocked(); err != nil {
			return alertness.Frame{}, fmt.Errorf("%w: %v", ErrNotConnected, err)
		}
	}
	conn := c.conn

	writeDeadline := time.Now().Add(c.writeTimeout)
	readDeadline := time.Now().Add(c.readTimeout)
	if deadline, ok := ctx.Deadline(); ok {
		if deadline.Before(writeDeadline) {
			writeDeadline = deadline
		}
		if deadline.Before(readDeadline) {
			readDeadline = deadline
		}
	}

	conn.SetWriteDeadline(writeDeadline)
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		c.conn = nil
		conn.Close()
		return alertness.Frame{}, fmt.Errorf("error sending frame: %w", err)
	}

	conn.SetReadDeadline(readDeadline)
	_, message, err := conn.ReadMessage()
	if err != nil {
		c.conn = nil
		conn.Close()
		return alertness.Frame{}, fmt.Errorf("error reading landmarks: %w", err)
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	result, err := Decode(message)
	if err != nil {
		return alertness.Frame{}, fmt.Errorf("error unmarshaling landmarks: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"frame_bytes": len(frame),
		"face":        len(result.Face),
		"pose":        len(result.Pose),
	}).Debug("Received landmarks")

	return result, nil
}
