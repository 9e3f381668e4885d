package monitorHandler

import (
	"DriverGuard/internal/alertness/alertnesstest"
	"DriverGuard/internal/api/monitor"
	"DriverGuard/pkg/landmark"
	"net"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) string {
	t.Helper()

	app := newTestApp(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "ws://" + ln.Addr().String() + "/api/v1/monitor/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	return conn
}

func sendFrame(t *testing.T, conn *websocket.Conn, msg monitor.FrameMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func TestStreamRequiresSubject(t *testing.T) {
	url := startServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestStreamEvaluatesFrames(t *testing.T) {
	conn := dial(t, startServer(t)+"?subject=truck-7")

	closed := monitor.FrameMessage{
		Camera:    monitor.DriverCamera,
		Landmarks: &landmark.Payload{Face: alertnesstest.Closed()},
	}

	var out monitor.AlertMessage
	for i := 1; i <= 7; i++ {
		sendFrame(t, conn, closed)
		require.NoError(t, conn.ReadJSON(&out))
	}
	assert.Equal(t, "Drowsy: Eyes closed", out.Status)
	assert.True(t, out.Critical)
	assert.Equal(t, "truck-7", out.SubjectID)
}

func TestStreamSurvivesBadMessages(t *testing.T) {
	conn := dial(t, startServer(t)+"?subject=truck-7")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	var wsErr monitor.WebSocketError
	require.NoError(t, conn.ReadJSON(&wsErr))
	assert.Equal(t, "INVALID_MESSAGE", wsErr.Code)

	sendFrame(t, conn, monitor.FrameMessage{
		Camera:    monitor.DriverCamera,
		Landmarks: &landmark.Payload{Face: alertnesstest.Open()[:3]},
	})
	wsErr = monitor.WebSocketError{}
	require.NoError(t, conn.ReadJSON(&wsErr))
	assert.Equal(t, "MALFORMED_LANDMARKS", wsErr.Code)

	// Frames from other cameras get no reply, so the next reply belongs to
	// the driver frame after it.
	sendFrame(t, conn, monitor.FrameMessage{
		Camera:    "road",
		Landmarks: &landmark.Payload{Face: alertnesstest.Closed()},
	})
	sendFrame(t, conn, monitor.FrameMessage{
		Camera:    monitor.DriverCamera,
		Landmarks: &landmark.Payload{Face: alertnesstest.Closed()},
	})

	var out monitor.AlertMessage
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "OK", out.Verdict)
	assert.Equal(t, 1, out.EyeFrames)
}
