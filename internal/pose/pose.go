// Package pose animates a movable frame between a rest pose and a floating
// pose.
//
// The animator owns no clock. The host calls Update once per rendered frame
// with the elapsed seconds, which advances the single active Transition.
package pose

import (
	"errors"
	"fmt"

	"github.com/Faultbox/holoframe/pkg/math"
)

// Pose is a position and rotation in world space.
type Pose struct {
	Position math.Vec3
	Rotation math.Quat
}

// Identity returns the pose at the origin with no rotation.
func Identity() Pose {
	return Pose{Rotation: math.QuatIdentity()}
}

// Interpolate blends from p to target: position linearly, rotation along
// the shortest arc.
func (p Pose) Interpolate(target Pose, t float32) Pose {
	return Pose{
		Position: p.Position.Lerp(target.Position, t),
		Rotation: p.Rotation.Slerp(target.Rotation, t),
	}
}

// Matrix returns the model matrix for the pose at the given scale.
func (p Pose) Matrix(scale math.Vec3) math.Mat4 {
	return math.TRS(p.Position, p.Rotation, scale)
}

// Transform is anything whose pose can be read and written.
type Transform interface {
	Pose() Pose
	SetPose(Pose)
}

// Node is a plain in-memory Transform.
type Node struct {
	Name string
	pose Pose
}

// NewNode creates a node at the given pose.
func NewNode(name string, p Pose) *Node {
	return &Node{Name: name, pose: p}
}

// Pose returns the node's current pose.
func (n *Node) Pose() Pose {
	return n.pose
}

// SetPose replaces the node's pose.
func (n *Node) SetPose(p Pose) {
	n.pose = p
}

// Translate moves the node by delta without touching its rotation.
func (n *Node) Translate(delta math.Vec3) {
	n.pose.Position = n.pose.Position.Add(delta)
}

// Configuration errors reported by NewAnimator.
var (
	ErrNoFrame       = errors.New("frame transform is not assigned")
	ErrNoFloatTarget = errors.New("float transform is not assigned")
)

// ConfigurationError marks a missing collaborator. The component that
// reports it stays inert.
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
