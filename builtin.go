package glkit

import "fmt"

const srcBasicVertex = `#version 330 core

layout (location = 0) in vec3 a_pos;

void main() {
	gl_Position = vec4(a_pos, 1.0);
}
`

const srcBasicFragment = `#version 330 core

uniform vec4 u_color;

out vec4 out_color;

void main() {
	out_color = u_color;
}
`

const srcColorVertex = `#version 330 core

layout (location = 0) in vec3 a_pos;
layout (location = 1) in vec4 a_color;

out vec4 v_color;

void main() {
	v_color = a_color;
	gl_Position = vec4(a_pos, 1.0);
}
`

const srcColorFragment = `#version 330 core

in vec4 v_color;

out vec4 out_color;

void main() {
	out_color = v_color;
}
`

const srcTextureVertex = `#version 330 core

layout (location = 0) in vec3 a_pos;
layout (location = 1) in vec2 a_coord;

out vec2 v_coord;

void main() {
	v_coord = a_coord;
	gl_Position = vec4(a_pos, 1.0);
}
`

const srcTextureFragment = `#version 330 core

uniform sampler2D u_tex;

in vec2 v_coord;

out vec4 out_color;

void main() {
	out_color = texture(u_tex, v_coord);
}
`

// Shaders bundles the built-in programs. Basic fills with the uniform
// "u_color" and pairs with BasicVertex, Color interpolates per-vertex colors
// and pairs with ColorVertex, Texture samples the sampler "u_tex" and pairs
// with TextureVertex.
type Shaders struct {
	Basic   *Shader
	Color   *Shader
	Texture *Shader
}

// NewShaders compiles and links the built-in programs. Intermediate stages
// are released before returning.
func NewShaders(ctx *Context) (*Shaders, error) {
	var (
		s   Shaders
		err error
	)

	s.Basic, err = buildProgram(ctx, srcBasicVertex, srcBasicFragment)
	if err != nil {
		return nil, fmt.Errorf("basic shader: %w", err)
	}

	s.Color, err = buildProgram(ctx, srcColorVertex, srcColorFragment)
	if err != nil {
		s.Basic.Release()
		return nil, fmt.Errorf("color shader: %w", err)
	}

	s.Texture, err = buildProgram(ctx, srcTextureVertex, srcTextureFragment)
	if err != nil {
		s.Basic.Release()
		s.Color.Release()
		return nil, fmt.Errorf("texture shader: %w", err)
	}

	return &s, nil
}

func buildProgram(ctx *Context, vertexSrc, fragmentSrc string) (*Shader, error) {
	vertex, err := NewStage(ctx, VertexStage, vertexSrc)
	if err != nil {
		return nil, err
	}
	defer vertex.Release()

	fragment, err := NewStage(ctx, FragmentStage, fragmentSrc)
	if err != nil {
		return nil, err
	}
	defer fragment.Release()

	return NewShader(ctx, vertex, fragment)
}

// Release deletes all three programs.
func (s *Shaders) Release() {
	s.Basic.Release()
	s.Color.Release()
	s.Texture.Release()
}
