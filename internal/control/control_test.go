package control

import (
	"image"
	"sync"

	"github.com/Faultbox/holoframe/internal/gallery"
	"github.com/Faultbox/holoframe/internal/scene"
)

// fakeScene records posted commands.
type fakeScene struct {
	mu      sync.Mutex
	posted  []scene.Command
	full    bool
	status  scene.Status
	current *gallery.Texture
}

func (f *fakeScene) Post(cmd scene.Command) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return false
	}
	f.posted = append(f.posted, cmd)
	return true
}

func (f *fakeScene) Status() scene.Status { return f.status }

func (f *fakeScene) Current() *gallery.Texture { return f.current }

func (f *fakeScene) kinds() []scene.CommandKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := make([]scene.CommandKind, len(f.posted))
	for i, c := range f.posted {
		kinds[i] = c.Kind
	}
	return kinds
}

func testTexture(w, h int) *gallery.Texture {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	return &gallery.Texture{Path: "test.jpg", Image: img}
}
