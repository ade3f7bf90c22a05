package picking

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/holoframe/internal/pose"
	"github.com/Faultbox/holoframe/pkg/math"
)

const fov = float32(gomath.Pi / 3)

func TestCameraRayCentre(t *testing.T) {
	r := CameraRay(400, 300, 800, 600, fov)
	if r.Direction.Distance(math.Vec3{Z: -1}) > 1e-5 {
		t.Errorf("centre ray direction = %v, want (0,0,-1)", r.Direction)
	}
}

func TestCameraRayEdges(t *testing.T) {
	top := CameraRay(400, 0, 800, 600, fov)
	// top edge of the view is fov/2 above the axis
	angle := gomath.Atan2(float64(top.Direction.Y), float64(-top.Direction.Z))
	if gomath.Abs(angle-float64(fov/2)) > 1e-4 {
		t.Errorf("top edge angle = %v, want %v", angle, fov/2)
	}
	right := CameraRay(800, 300, 800, 600, fov)
	if right.Direction.X <= 0 {
		t.Errorf("right edge ray = %v, want +X", right.Direction)
	}
}

func TestIntersectQuad(t *testing.T) {
	facing := pose.Pose{Position: math.Vec3{Z: -3}, Rotation: math.QuatIdentity()}
	turned := pose.Pose{Position: math.Vec3{Z: -3}, Rotation: math.QuatFromEuler(0, 60, 0)}
	offset := pose.Pose{Position: math.Vec3{X: 2, Z: -3}, Rotation: math.QuatIdentity()}
	behind := pose.Pose{Position: math.Vec3{Z: 3}, Rotation: math.QuatIdentity()}
	centre := Ray{Direction: math.Vec3{Z: -1}}

	tests := []struct {
		name  string
		ray   Ray
		p     pose.Pose
		hit   bool
		wantT float32
	}{
		{"centre", centre, facing, true, 3},
		{"turned", centre, turned, true, 3},
		{"turned foreshortened", Ray{Direction: math.Vec3{X: 0.4, Z: -3}.Normalize()}, turned, false, 0},
		{"beside", centre, offset, false, 0},
		{"behind camera", centre, behind, false, 0},
		{"corner", Ray{Direction: math.Vec3{X: 0.4, Y: 0.4, Z: -3}.Normalize()}, facing, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, hit := tt.ray.IntersectQuad(tt.p, 1, 1)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if tt.wantT > 0 && gomath.Abs(float64(dist-tt.wantT)) > 1e-4 {
				t.Errorf("t = %v, want %v", dist, tt.wantT)
			}
		})
	}
}
