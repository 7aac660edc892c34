package rpcfake

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gorilla/websocket"
)

// SignatureAnswer returns the messages written back to one signatureSubscribe
// request, and whether the server then drops the connection.
type SignatureAnswer func(requestID uint64) (messages []string, hangUp bool)

// WSServer is a websocket endpoint speaking the subscription half of the RPC API.
type WSServer struct {
	*httptest.Server
}

// URL of the endpoint with a ws scheme.
func (s *WSServer) URL() string {
	return "ws" + strings.TrimPrefix(s.Server.URL, "http")
}

func NewSignatureServer(answer SignatureAnswer) *WSServer {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req struct {
				ID     uint64 `json:"id"`
				Method string `json:"method"`
			}
			if err := json.Unmarshal(msg, &req); err != nil || req.Method != "signatureSubscribe" {
				continue
			}
			messages, hangUp := answer(req.ID)
			for _, m := range messages {
				if err := conn.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
					return
				}
			}
			if hangUp {
				return
			}
		}
	}))
	return &WSServer{Server: srv}
}

// Subscribed acknowledges request requestID with subscription subID.
func Subscribed(requestID, subID uint64) string {
	return fmt.Sprintf(`{"jsonrpc":"2.0","result":%d,"id":%d}`, subID, requestID)
}

// SignatureNotification is the notification of a processed signature.
// txErr is raw JSON, "null" for success.
func SignatureNotification(subID uint64, txErr string) string {
	return fmt.Sprintf(`{"jsonrpc":"2.0","method":"signatureNotification","params":{"result":{"context":{"slot":5},"value":{"err":%s}},"subscription":%d}}`, txErr, subID)
}
