// Package remote serves an optional HTTP endpoint that lets another device
// drive the pointer over a websocket and read the latest frame statistics.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/pthm-cable/glowfield/systems"
	"github.com/pthm-cable/glowfield/telemetry"
)

// PointerSink receives pointer updates.
type PointerSink interface {
	SetPointer(p systems.Pointer)
}

// StatsSource provides the most recent telemetry window.
type StatsSource interface {
	LatestStats() telemetry.WindowStats
}

// PointerMessage is one websocket frame, in canvas pixels.
type PointerMessage struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Active  bool    `json:"active"`
	Pressed bool    `json:"pressed"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// NewRouter builds the gin engine with /ws, /healthz and /stats.
func NewRouter(sink PointerSink, stats StatsSource) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, stats.LatestStats())
	})

	r.GET("/ws", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			if _, ok := err.(websocket.HandshakeError); !ok {
				slog.Warn("websocket upgrade failed", "error", err)
			}
			return
		}
		readPointer(conn, sink)
	})

	return r
}

// readPointer forwards messages until the client goes away, then marks the
// pointer inactive.
func readPointer(conn *websocket.Conn, sink PointerSink) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	slog.Info("pointer client connected", "remote", remote)

	for {
		var msg PointerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("pointer client error", "remote", remote, "error", err)
			}
			break
		}
		sink.SetPointer(systems.Pointer{
			X:       msg.X,
			Y:       msg.Y,
			Active:  msg.Active,
			Pressed: msg.Pressed,
		})
	}

	sink.SetPointer(systems.Pointer{})
	slog.Info("pointer client disconnected", "remote", remote)
}

// requestLogger logs requests through slog instead of gin's stdout writer.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Server runs the router on a listener.
type Server struct {
	srv             *http.Server
	ln              net.Listener
	shutdownTimeout time.Duration
}

// Start listens on addr and serves in the background. The listen error,
// if any, is returned immediately.
func Start(addr string, shutdownTimeout time.Duration, sink PointerSink, stats StatsSource) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}

	s := &Server{
		srv:             &http.Server{Handler: NewRouter(sink, stats)},
		ln:              ln,
		shutdownTimeout: shutdownTimeout,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("remote server stopped", "error", err)
		}
	}()

	slog.Info("remote server listening", "addr", ln.Addr().String())
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown stops accepting requests and waits for handlers up to the
// configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
	}
	return s.srv.Shutdown(ctx)
}
