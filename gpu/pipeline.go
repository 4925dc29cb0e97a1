package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Embedded analytic text shader source.
//
//go:embed shaders/vectortext.wgsl
var textShaderSource string

// Pipeline errors.
var (
	// ErrNilDevice is returned when constructing a pipeline without a device.
	ErrNilDevice = errors.New("gpu: device is nil")

	// ErrPipelineNotInitialized is returned when drawing before Init.
	ErrPipelineNotInitialized = errors.New("gpu: text pipeline not initialized")

	// ErrEmptyMesh is returned when a frame is built from a mesh with no quads.
	ErrEmptyMesh = errors.New("gpu: mesh has no quads")
)

// TextPipeline owns the render pipeline for analytic vector text: shader
// module, bind group layout, pipeline layout and the pipeline itself.
// Buffers and bind groups are per-frame objects owned by TextRenderer.
//
// Bind group layout:
//
//	binding 0: glyph table     (read-only storage, fragment)
//	binding 1: curve buffer    (read-only storage, fragment)
//	binding 2: render uniforms (uniform, vertex+fragment)
type TextPipeline struct {
	device hal.Device
	queue  hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// NewTextPipeline creates a text pipeline for the given device and queue.
// GPU objects are not created until Init.
func NewTextPipeline(device hal.Device, queue hal.Queue) (*TextPipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	return &TextPipeline{
		device: device,
		queue:  queue,
	}, nil
}

// Init compiles the shader and creates the render pipeline. Calling Init
// on an initialized pipeline is a no-op.
func (p *TextPipeline) Init() error {
	if p.pipeline != nil {
		return nil
	}
	if textShaderSource == "" {
		return errors.New("gpu: vectortext shader source is empty")
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "vectortext_shader",
		Source: hal.ShaderSource{WGSL: textShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile vectortext shader: %w", err)
	}
	p.shader = shader

	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "vectortext_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		p.destroy()
		return fmt.Errorf("create vectortext bind layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "vectortext_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.destroy()
		return fmt.Errorf("create vectortext pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "vectortext_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    textVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.destroy()
		return fmt.Errorf("create vectortext pipeline: %w", err)
	}
	p.pipeline = pipeline

	return nil
}

// Initialized reports whether Init has completed.
func (p *TextPipeline) Initialized() bool {
	return p.pipeline != nil
}

// Destroy releases all GPU resources held by the pipeline. Safe to call
// multiple times.
func (p *TextPipeline) Destroy() {
	p.destroy()
}

// destroy releases resources in reverse creation order.
func (p *TextPipeline) destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// textVertexLayout returns the vertex buffer layout for the text
// pipeline. Matches VertexInput in vectortext.wgsl:
//
//	location 0: position    (vec2<f32>)
//	location 1: uv          (vec2<f32>)
//	location 2: glyph_index (i32)
func textVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
				{Format: gputypes.VertexFormatSint32, Offset: 16, ShaderLocation: 2},
			},
		},
	}
}

// ShaderSource returns the embedded WGSL source. Exposed for tooling and
// for backends that compile shaders externally.
func ShaderSource() string {
	return textShaderSource
}
