// Package control exposes the scene's triggers to remote callers over HTTP
// and MQTT. Nothing here touches the components directly: every trigger
// is posted to the scene's command queue.
package control

import (
	"github.com/Faultbox/holoframe/internal/gallery"
	"github.com/Faultbox/holoframe/internal/scene"
)

// Scene is the part of *scene.Scene the control surfaces need.
type Scene interface {
	Post(cmd scene.Command) bool
	Status() scene.Status
	Current() *gallery.Texture
}

// CommandMessage is the JSON body accepted by POST /api/v1/command and
// published on the MQTT command topic.
type CommandMessage struct {
	Command string `json:"command" binding:"required"`
}

// ApiResponse is the envelope of every JSON reply.
type ApiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}
