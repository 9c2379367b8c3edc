// Package shaders embeds the GLSL sources used by the viewer.
package shaders

import _ "embed"

var (
	//go:embed object.vert
	ObjectVertex string
	//go:embed object.frag
	ObjectFragment string
	//go:embed skybox.vert
	SkyBoxVertex string
	//go:embed skybox.frag
	SkyBoxFragment string
)
