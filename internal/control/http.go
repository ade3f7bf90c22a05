package control

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Faultbox/holoframe/internal/config"
	"github.com/Faultbox/holoframe/internal/gallery"
	"github.com/Faultbox/holoframe/internal/logger"
	"github.com/Faultbox/holoframe/internal/scene"
)

// Server serves the HTTP control API.
type Server struct {
	scene     Scene
	log       *zap.Logger
	startTime time.Time
}

// NewServer creates a server for sc.
func NewServer(sc Scene, log *zap.Logger) *Server {
	return &Server{
		scene:     sc,
		log:       logger.OrNop(log),
		startTime: time.Now(),
	}
}

// NewEngine builds a gin engine with recovery and CORS configured from cfg.
func NewEngine(cfg config.HTTPConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !containsWildcard(origins),
		MaxAge:           12 * time.Hour,
	}))
	return r
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// SetupRoutes registers the API on r.
func (s *Server) SetupRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/status", s.handleStatus)
		v1.GET("/health", s.handleHealth)
		v1.POST("/command", s.handleCommand)

		frame := v1.Group("/frame")
		{
			frame.POST("/float", s.trigger(scene.CommandFloat))
			frame.POST("/release", s.trigger(scene.CommandRelease))
		}

		g := v1.Group("/gallery")
		{
			g.POST("/next", s.trigger(scene.CommandNext))
			g.POST("/prev", s.trigger(scene.CommandPrevious))
			g.GET("/current", s.handleCurrentImage)
		}
	}
}

// HTTPServer builds an http.Server on cfg.Addr serving the API. The caller
// owns it: run ListenAndServe in a goroutine and stop it with Shutdown.
func (s *Server) HTTPServer(cfg config.HTTPConfig) *http.Server {
	r := NewEngine(cfg)
	s.SetupRoutes(r)
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   s.scene.Status(),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data: gin.H{
			"uptime": time.Since(s.startTime).Round(time.Second).String(),
		},
	})
}

func (s *Server) handleCommand(c *gin.Context) {
	var req CommandMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "invalid command request: " + err.Error(),
		})
		return
	}
	kind, err := scene.ParseCommandKind(req.Command)
	if err != nil || kind == scene.CommandMove {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("unsupported command %q", req.Command),
		})
		return
	}
	s.post(c, kind)
}

func (s *Server) trigger(kind scene.CommandKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.post(c, kind)
	}
}

func (s *Server) post(c *gin.Context, kind scene.CommandKind) {
	if !s.scene.Post(scene.Command{Kind: kind}) {
		c.JSON(http.StatusServiceUnavailable, ApiResponse{
			Status: "error",
			Error:  "command queue is full",
		})
		return
	}
	s.log.Debug("http command queued", zap.Stringer("command", kind))
	c.JSON(http.StatusAccepted, ApiResponse{
		Status:  "success",
		Message: kind.String() + " queued",
	})
}

func (s *Server) handleCurrentImage(c *gin.Context) {
	tex := s.scene.Current()
	if tex == nil {
		c.JSON(http.StatusNotFound, ApiResponse{
			Status: "error",
			Error:  "no image on display",
		})
		return
	}

	var buf bytes.Buffer
	if err := gallery.EncodeWebP(&buf, tex); err != nil {
		s.log.Warn("encoding current image", zap.String("path", tex.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ApiResponse{
			Status: "error",
			Error:  err.Error(),
		})
		return
	}
	c.Data(http.StatusOK, "image/webp", buf.Bytes())
}
