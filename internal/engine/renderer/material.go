package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/holoframe/internal/gallery"
)

// Material is the frame's paintable material. Assigned textures are
// uploaded to the GPU lazily, on the next draw.
type Material struct {
	tex   *gallery.Texture
	texID uint32
	dirty bool
}

// SetMainTexture implements gallery.Material.
func (m *Material) SetMainTexture(tex *gallery.Texture) {
	m.tex = tex
	m.dirty = true
}

// MainTexture implements gallery.Material.
func (m *Material) MainTexture() *gallery.Texture {
	return m.tex
}

// sync uploads the assigned texture if it changed. Returns the GL texture
// to bind, 0 when nothing is assigned.
func (m *Material) sync() uint32 {
	if !m.dirty {
		return m.texID
	}
	m.dirty = false
	m.release()
	if m.tex == nil || m.tex.Image == nil || len(m.tex.Image.Pix) == 0 {
		return 0
	}
	m.texID = uploadTexture(m.tex)
	return m.texID
}

func (m *Material) release() {
	if m.texID != 0 {
		gl.DeleteTextures(1, &m.texID)
		m.texID = 0
	}
}

func uploadTexture(tex *gallery.Texture) uint32 {
	img := tex.Image
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	return texID
}
