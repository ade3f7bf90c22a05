// Package viewer holds the wiring shared by the desktop and terminal hosts.
package viewer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/holoframe/internal/config"
	"github.com/Faultbox/holoframe/internal/gallery"
	"github.com/Faultbox/holoframe/internal/logger"
	"github.com/Faultbox/holoframe/internal/scene"
)

// NewScene builds the scene described by cfg, painting on surface.
func NewScene(cfg *config.Config, surface gallery.Surface) (*scene.Scene, error) {
	anim, err := cfg.Animation.Options()
	if err != nil {
		return nil, fmt.Errorf("animation: %w", err)
	}
	sc := scene.New(scene.Config{
		Rest:      cfg.Frame.Rest.Pose(),
		Float:     cfg.Frame.Float.Pose(),
		Animation: anim,
		Gallery: gallery.Options{
			Dir:            cfg.Gallery.Dir,
			Patterns:       cfg.Gallery.Patterns,
			MaxTextureSize: cfg.Gallery.MaxTextureSize,
		},
		Surface: surface,
	}, logger.Named("scene"))
	return sc, nil
}

// StatusLine renders a one-line summary of st.
func StatusLine(st scene.Status) string {
	var b strings.Builder
	if st.Floating {
		b.WriteString("floating")
	} else {
		b.WriteString("resting")
	}
	if st.Grabbed {
		b.WriteString(" (grabbed)")
	} else if st.Animating {
		fmt.Fprintf(&b, " %3.0f%%", st.Progress*100)
	}

	if st.ImageCount == 0 {
		b.WriteString(" | no images")
	} else {
		fmt.Fprintf(&b, " | %d/%d %s", st.ImageIndex+1, st.ImageCount, filepath.Base(st.ImagePath))
	}
	return b.String()
}
