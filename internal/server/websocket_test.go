package server

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/magefree/arena-go/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(url, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func sendSimulation(t *testing.T, conn *websocket.Conn, doc string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(Message{Type: MessageSimulate, Data: json.RawMessage(doc)}))
}

func TestWebsocketStreamsResultsThenDone(t *testing.T) {
	ts := newTestServer(t, testConfig())
	conn := dial(t, ts.URL)

	sendSimulation(t, conn, simulationDocument)

	var records []json.RawMessage
	for {
		msg := readMessage(t, conn)
		if msg.Type == MessageDone {
			var stats game.Stats
			require.NoError(t, json.Unmarshal(msg.Data, &stats))
			assert.Equal(t, game.Stats{GamesPlayed: 1}, stats)
			break
		}
		require.Equal(t, MessageResult, msg.Type)
		records = append(records, msg.Data)
	}

	encoded, err := json.Marshal(records)
	require.NoError(t, err)
	assert.JSONEq(t, expectedResults, string(encoded))
}

func TestWebsocketRejectsMalformedMessages(t *testing.T) {
	ts := newTestServer(t, testConfig())
	conn := dial(t, ts.URL)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	msg := readMessage(t, conn)
	assert.Equal(t, MessageError, msg.Type)

	require.NoError(t, conn.WriteJSON(Message{Type: "chat"}))
	msg = readMessage(t, conn)
	assert.Equal(t, MessageError, msg.Type)
	assert.Contains(t, string(msg.Data), "unsupported message type")

	// The connection stays usable after a rejected message.
	sendSimulation(t, conn, simulationDocument)
	assert.Equal(t, MessageResult, readMessage(t, conn).Type)
}

func TestWebsocketRateLimitsSubmissions(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	ts := newTestServer(t, cfg)
	conn := dial(t, ts.URL)

	sendSimulation(t, conn, simulationDocument)
	for readMessage(t, conn).Type != MessageDone {
	}

	sendSimulation(t, conn, simulationDocument)
	msg := readMessage(t, conn)
	assert.Equal(t, MessageError, msg.Type)
	assert.Contains(t, string(msg.Data), errRateLimited.Error())
}

func TestHubTracksClients(t *testing.T) {
	ts := newTestServer(t, testConfig())
	dial(t, ts.URL)

	assert.Eventually(t, func() bool {
		resp, err := ts.Client().Get(ts.URL + "/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var health healthResponse
		if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
			return false
		}
		return health.Clients == 1
	}, 2*time.Second, 10*time.Millisecond)
}
