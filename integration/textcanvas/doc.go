// Package textcanvas integrates vectortext with gpucontext-based hosts.
//
// A Canvas owns a pixel buffer that text is rasterized into on the CPU
// (through the same analytic coverage evaluator the GPU shader runs)
// and a lazily-created GPU texture that tracks it. Hosts that expose a
// gpucontext.TextureDrawer — such as a gogpu application context — can
// composite the canvas with a single textured quad per frame.
//
// This is the integration path for applications that want vector text
// inside an existing render loop without wiring the wgpu/hal pipeline
// from the gpu package themselves:
//
//	src, _ := vectortext.NewGoTextSource(fontData)
//	fc := vectortext.NewFontContext(src)
//	canvas, _ := textcanvas.New(provider, fc, 800, 600)
//
//	canvas.SetColor(1, 1, 1, 1)
//	canvas.DrawText("hello", 40, 120, 64)
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// Canvas is NOT safe for concurrent use. Create one Canvas per
// goroutine, or use external synchronization. The FontContext it draws
// from is safe to share.
package textcanvas
