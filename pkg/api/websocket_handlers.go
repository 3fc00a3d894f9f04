package api

import (
	"encoding/json"
	"errors"
	"syscall"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	customlog "github.com/open-teleop/pathscript/pkg/log"
	"github.com/open-teleop/pathscript/pkg/request"
	"github.com/open-teleop/pathscript/services"
)

// WebSocket stream terminators
const (
	FrameEnd         = "END"
	FrameErrorPrefix = "ERROR "
)

// RegisterWebSocketRoutes mounts the script stream at /ws/scripts.
func RegisterWebSocketRoutes(app *fiber.App, scripts services.ScriptService, logger customlog.Logger) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/scripts", websocket.New(func(conn *websocket.Conn) {
		ScriptWebSocketHandler(conn, logger, scripts)
	}))

	logger.Infof("Registered script WebSocket endpoint at /ws/scripts")
}

// ScriptFrames turns one JSON request frame into the frames streamed back:
// one per command line followed by END, or a single ERROR frame.
func ScriptFrames(raw []byte, scripts services.ScriptService) []string {
	var dto request.ScriptRequestDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return []string{FrameErrorPrefix + "invalid JSON: " + err.Error()}
	}

	req, err := dto.ToRequest(scripts.DefaultDelay())
	if err != nil {
		return []string{FrameErrorPrefix + err.Error()}
	}

	generated, err := scripts.Generate(req)
	if err != nil {
		return []string{FrameErrorPrefix + err.Error()}
	}

	frames := make([]string, 0, len(generated.Commands)+1)
	frames = append(frames, generated.Commands...)
	return append(frames, FrameEnd)
}

// ScriptWebSocketHandler answers each text frame with the generated script,
// one command line per frame.
func ScriptWebSocketHandler(conn *websocket.Conn, logger customlog.Logger, scripts services.ScriptService) {
	logger.Infof("Script WebSocket connected: %s", conn.RemoteAddr())
	var (
		mt  int
		msg []byte
		err error
	)
	for {
		if mt, msg, err = conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Errorf("Script WS read error: %v", err)
			} else if err != websocket.ErrCloseSent && !errors.Is(err, syscall.EPIPE) && !errors.Is(err, syscall.ECONNRESET) {
				logger.Infof("Script WS connection closed: %v", err)
			} else {
				logger.Infof("Script WS connection closed normally.")
			}
			break
		}

		if mt != websocket.TextMessage {
			logger.Infof("Ignoring non-text Script WS message type: %d", mt)
			continue
		}

		frames := ScriptFrames(msg, scripts)
		logger.Debugf("Streaming %d frames", len(frames))
		if writeFrames(conn, frames) != nil {
			logger.Warnf("Script WS write failed, closing connection")
			break
		}
	}
	logger.Infof("Script WebSocket disconnected: %s", conn.RemoteAddr())
}

func writeFrames(conn *websocket.Conn, frames []string) error {
	for _, f := range frames {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
			return err
		}
	}
	return nil
}
