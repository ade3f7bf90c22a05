// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// FrameVertexShader positions the textured frame quad.
//
//go:embed frame.vert
var FrameVertexShader string

// FrameFragmentShader samples the frame's image.
//
//go:embed frame.frag
var FrameFragmentShader string
