package gallery

import (
	"errors"
	"fmt"
	"sync"
)

// Material receives the texture a surface should display.
type Material interface {
	SetMainTexture(tex *Texture)
	MainTexture() *Texture
}

// Surface is a paintable display object. A nil Material means the surface
// cannot display textures.
type Surface interface {
	Material() Material
}

// Configuration errors reported by NewCycler.
var (
	ErrNoSurface  = errors.New("display surface is not assigned")
	ErrNoMaterial = errors.New("display surface has no paintable material")
)

// ConfigurationError marks a missing collaborator. The cycler that reports
// it stays inert.
type ConfigurationError struct {
	Component string
	Err       error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Component, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// MemorySurface keeps the assigned texture in memory. Hosts without a GPU
// display from it; it is safe to read from other goroutines.
type MemorySurface struct {
	material *MemoryMaterial
}

// NewMemorySurface creates a surface whose material starts with initial,
// which may be nil.
func NewMemorySurface(initial *Texture) *MemorySurface {
	return &MemorySurface{material: &MemoryMaterial{tex: initial}}
}

// Material returns the surface's material, or nil for a zero MemorySurface.
func (s *MemorySurface) Material() Material {
	if s.material == nil {
		return nil
	}
	return s.material
}

// MemoryMaterial stores the main texture and counts assignments.
type MemoryMaterial struct {
	mu      sync.RWMutex
	tex     *Texture
	assigns int
}

// SetMainTexture replaces the displayed texture.
func (m *MemoryMaterial) SetMainTexture(tex *Texture) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tex = tex
	m.assigns++
}

// MainTexture returns the displayed texture.
func (m *MemoryMaterial) MainTexture() *Texture {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tex
}

// Assignments returns how many times SetMainTexture was called.
func (m *MemoryMaterial) Assignments() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assigns
}
