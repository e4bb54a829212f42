// Package glkit is a thin toolkit over OpenGL 3.3 core: a state-caching
// render context, typed wrappers for shaders, textures and vertex buffers,
// and a small set of built-in shader programs.
//
// All driver access flows through a Context, which mirrors global GL state in
// user space and skips redundant state-change calls. Construct one with New
// over a gl.OpenGL binding (see the gl subpackage) and call Init before any
// other operation. Resources (Stage, Shader, Texture, VBO) are created from a
// Context and hold their native handles until Release.
package glkit
