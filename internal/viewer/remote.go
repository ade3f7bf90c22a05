package viewer

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Faultbox/holoframe/internal/config"
	"github.com/Faultbox/holoframe/internal/control"
	"github.com/Faultbox/holoframe/internal/logger"
)

// Remotes runs the enabled remote trigger surfaces.
type Remotes struct {
	http *http.Server
	mqtt *control.Bridge
	log  *zap.Logger
}

// StartRemotes starts the HTTP server and MQTT bridge enabled in cfg.
// Failures are logged; the viewer keeps running without that surface.
func StartRemotes(cfg config.ControlConfig, sc control.Scene) *Remotes {
	r := &Remotes{log: logger.Named("control")}

	if cfg.HTTP.Enabled {
		gin.SetMode(gin.ReleaseMode)
		srv := control.NewServer(sc, r.log.Named("http")).HTTPServer(cfg.HTTP)
		r.http = srv
		r.log.Info("http control listening", zap.String("addr", cfg.HTTP.Addr))
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				r.log.Error("http control stopped", zap.Error(err))
			}
		}()
	}

	if cfg.MQTT.Enabled {
		b := control.NewBridge(cfg.MQTT, sc, r.log.Named("mqtt"))
		if err := b.Connect(); err != nil {
			r.log.Error("mqtt control unavailable", zap.String("url", cfg.MQTT.URL), zap.Error(err))
		} else {
			r.mqtt = b
		}
	}

	return r
}

// Close stops every running surface.
func (r *Remotes) Close() {
	if r.http != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.http.Shutdown(ctx); err != nil {
			r.log.Warn("http shutdown", zap.Error(err))
		}
	}
	if r.mqtt != nil {
		r.mqtt.Close()
	}
}
