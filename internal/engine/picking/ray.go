// Package picking casts pointer rays against the frame.
package picking

import (
	gomath "math"

	"github.com/Faultbox/holoframe/internal/pose"
	"github.com/Faultbox/holoframe/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// CameraRay returns the ray through pixel (screenX, screenY) of a
// viewportW x viewportH viewport, for a camera at the origin looking down
// -Z with a vertical field of view of fovY radians.
func CameraRay(screenX, screenY, viewportW, viewportH, fovY float32) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	tanHalf := float32(gomath.Tan(float64(fovY) / 2))
	aspect := viewportW / viewportH
	dir := math.Vec3{X: ndcX * tanHalf * aspect, Y: ndcY * tanHalf, Z: -1}
	return Ray{Direction: dir.Normalize()}
}

// IntersectQuad intersects the ray with a width x height quad centred on
// p and facing its local +Z. Returns the distance along the ray and
// whether the quad was hit in front of the origin.
func (r Ray) IntersectQuad(p pose.Pose, width, height float32) (t float32, hit bool) {
	// Work in the quad's local space, where it lies on z = 0
	inv := p.Rotation.Conjugate()
	origin := inv.Rotate(r.Origin.Sub(p.Position))
	dir := inv.Rotate(r.Direction)

	if gomath.Abs(float64(dir.Z)) < 1e-6 {
		return 0, false // Ray parallel to quad
	}
	t = -origin.Z / dir.Z
	if t < 0 {
		return 0, false // Intersection behind ray origin
	}

	local := origin.Add(dir.Scale(t))
	if gomath.Abs(float64(local.X)) > float64(width/2) || gomath.Abs(float64(local.Y)) > float64(height/2) {
		return 0, false
	}
	return t, true
}
