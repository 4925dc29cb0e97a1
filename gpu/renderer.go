package gpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vectortext"
)

// TextRenderer drives the analytic text pipeline: it owns the persistent
// glyph and curve storage buffers, the per-frame vertex/index/uniform
// buffers, and the bind group tying them together.
//
// The glyph and curve buffers mirror a FontContext. The context's
// buffers only grow between Resets, so UploadGlyphBuffers detects
// changes by comparing element counts and re-uploads only when new
// glyphs were built since the last upload.
//
// Typical frame:
//
//	renderer.UploadGlyphBuffers(fc)
//	renderer.BuildFrame(mesh, uniforms)
//	renderer.RecordDraws(renderPass)
type TextRenderer struct {
	mu sync.Mutex

	device   hal.Device
	queue    hal.Queue
	pipeline *TextPipeline

	glyphBuf   hal.Buffer
	curveBuf   hal.Buffer
	glyphCount int
	curveCount int

	frame *frameResources
}

// frameResources holds the per-frame GPU objects. They are destroyed and
// rebuilt on the next BuildFrame.
type frameResources struct {
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	indexCount uint32
}

// NewTextRenderer creates a renderer for the given device and queue and
// initializes its pipeline.
func NewTextRenderer(device hal.Device, queue hal.Queue) (*TextRenderer, error) {
	pipeline, err := NewTextPipeline(device, queue)
	if err != nil {
		return nil, err
	}
	if err := pipeline.Init(); err != nil {
		return nil, fmt.Errorf("init text renderer: %w", err)
	}
	return &TextRenderer{
		device:   device,
		queue:    queue,
		pipeline: pipeline,
	}, nil
}

// Pipeline returns the underlying text pipeline.
func (r *TextRenderer) Pipeline() *TextPipeline {
	return r.pipeline
}

// UploadGlyphBuffers synchronizes the GPU glyph table and curve buffer
// with the font context. A no-op when no glyphs were built since the
// last upload.
func (r *TextRenderer) UploadGlyphBuffers(fc *vectortext.FontContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	curves := fc.Curves()
	entries := fc.Entries()
	if len(curves) == r.curveCount && len(entries) == r.glyphCount {
		return nil
	}

	// Recreate rather than grow in place: uploads happen at glyph cache
	// misses, which are rare after warmup, and recreation keeps the
	// bind group story simple (the next BuildFrame picks up the new
	// buffers).
	if r.glyphBuf != nil {
		r.device.DestroyBuffer(r.glyphBuf)
		r.glyphBuf = nil
	}
	if r.curveBuf != nil {
		r.device.DestroyBuffer(r.curveBuf)
		r.curveBuf = nil
	}
	r.glyphCount = 0
	r.curveCount = 0

	glyphData := BuildGlyphData(entries)
	curveData := BuildCurveData(curves)
	if len(glyphData) == 0 || len(curveData) == 0 {
		return nil
	}

	glyphBuf, err := r.createAndUploadBuffer("vectortext_glyphs", glyphData,
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("upload glyph table: %w", err)
	}
	curveBuf, err := r.createAndUploadBuffer("vectortext_curves", curveData,
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
	if err != nil {
		r.device.DestroyBuffer(glyphBuf)
		return fmt.Errorf("upload curve buffer: %w", err)
	}

	r.glyphBuf = glyphBuf
	r.curveBuf = curveBuf
	r.glyphCount = len(entries)
	r.curveCount = len(curves)
	return nil
}

// BuildFrame creates the per-frame vertex, index and uniform buffers for
// a laid-out mesh, plus the bind group. Resources from the previous
// frame are released first.
func (r *TextRenderer) BuildFrame(mesh vectortext.Mesh, uniforms RenderUniforms) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.pipeline.Initialized() {
		return ErrPipelineNotInitialized
	}
	if r.glyphBuf == nil || r.curveBuf == nil {
		return fmt.Errorf("gpu: build frame: %w", ErrPipelineNotInitialized)
	}
	if mesh.QuadCount() == 0 {
		return ErrEmptyMesh
	}

	r.destroyFrame()

	vertBuf, err := r.createAndUploadBuffer("vectortext_verts",
		BuildVertexData(mesh.Vertices),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}

	idxBuf, err := r.createAndUploadBuffer("vectortext_indices",
		BuildIndexData(mesh.Indices),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		r.device.DestroyBuffer(vertBuf)
		return fmt.Errorf("create index buffer: %w", err)
	}

	uniformData := BuildUniformData(uniforms)
	uniformBuf, err := r.createAndUploadBuffer("vectortext_uniforms",
		uniformData,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		r.device.DestroyBuffer(idxBuf)
		r.device.DestroyBuffer(vertBuf)
		return fmt.Errorf("create uniform buffer: %w", err)
	}

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "vectortext_bind",
		Layout: r.pipeline.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.glyphBuf.NativeHandle(), Offset: 0,
				Size: uint64(r.glyphCount * GlyphEntryStride),
			}},
			{Binding: 1, Resource: gputypes.BufferBinding{
				Buffer: r.curveBuf.NativeHandle(), Offset: 0,
				Size: uint64(r.curveCount * CurveStride),
			}},
			{Binding: 2, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0,
				Size: UniformSize,
			}},
		},
	})
	if err != nil {
		r.device.DestroyBuffer(uniformBuf)
		r.device.DestroyBuffer(idxBuf)
		r.device.DestroyBuffer(vertBuf)
		return fmt.Errorf("create bind group: %w", err)
	}

	r.frame = &frameResources{
		vertBuf:    vertBuf,
		idxBuf:     idxBuf,
		uniformBuf: uniformBuf,
		bindGroup:  bindGroup,
		indexCount: uint32(len(mesh.Indices)),
	}
	return nil
}

// RecordDraws records the text draw into an existing render pass. A
// no-op when no frame has been built.
func (r *TextRenderer) RecordDraws(rp hal.RenderPassEncoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frame == nil || r.frame.indexCount == 0 {
		return
	}
	rp.SetPipeline(r.pipeline.pipeline)
	rp.SetBindGroup(0, r.frame.bindGroup, nil)
	rp.SetVertexBuffer(0, r.frame.vertBuf, 0)
	rp.SetIndexBuffer(r.frame.idxBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(r.frame.indexCount, 1, 0, 0, 0)
}

// Destroy releases all GPU resources: the current frame, the glyph and
// curve buffers and the pipeline. Safe to call multiple times.
func (r *TextRenderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.destroyFrame()
	if r.glyphBuf != nil {
		r.device.DestroyBuffer(r.glyphBuf)
		r.glyphBuf = nil
	}
	if r.curveBuf != nil {
		r.device.DestroyBuffer(r.curveBuf)
		r.curveBuf = nil
	}
	r.glyphCount = 0
	r.curveCount = 0
	if r.pipeline != nil {
		r.pipeline.Destroy()
	}
}

func (r *TextRenderer) destroyFrame() {
	if r.frame == nil {
		return
	}
	if r.frame.bindGroup != nil {
		r.device.DestroyBindGroup(r.frame.bindGroup)
	}
	if r.frame.uniformBuf != nil {
		r.device.DestroyBuffer(r.frame.uniformBuf)
	}
	if r.frame.idxBuf != nil {
		r.device.DestroyBuffer(r.frame.idxBuf)
	}
	if r.frame.vertBuf != nil {
		r.device.DestroyBuffer(r.frame.vertBuf)
	}
	r.frame = nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (r *TextRenderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
