// Viewer panel: offscreen scene viewport with orbit controls.
package main

import (
	"image"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/meshforge/internal/engine/debug"
)

// lastMousePos tracks the previous mouse position for drag deltas.
var lastMousePos imgui.Vec2

// renderViewerPanel renders the 3D scene into its framebuffer and shows
// the result as an imgui image with orbit controls.
func (app *App) renderViewerPanel() {
	textureID := app.scene.Render()
	if textureID == 0 {
		imgui.TextDisabled("Viewer not initialized")
		return
	}

	// Deferred captures run right after Render so they see this frame.
	if app.thumbPending != "" && app.scene.HasMesh() {
		app.captureThumbnail(app.thumbPending)
		app.thumbPending = ""
	}
	if app.screenshotRequested {
		app.screenshotRequested = false
		app.captureViewer()
	}

	sceneW, sceneH := app.scene.Size()
	viewerW := float32(sceneW)
	viewerH := float32(sceneH)

	// Fit the viewport into the panel, leaving room for the controls row.
	avail := imgui.ContentRegionAvail()
	maxH := avail.Y - 70
	if maxH > viewerH {
		maxH = viewerH
	}
	if maxH < 64 {
		maxH = 64
	}

	aspect := viewerW / viewerH
	displayW := maxH * aspect
	displayH := maxH
	if displayW > avail.X {
		displayW = avail.X
		displayH = displayW / aspect
	}

	startX := imgui.CursorPosX()
	if displayW < avail.X {
		imgui.SetCursorPosX(startX + (avail.X-displayW)/2)
	}

	// UV flipped: the framebuffer texture has origin at bottom-left.
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(displayW, displayH),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.scene.Camera.HandleDrag(mousePos.X-lastMousePos.X, mousePos.Y-lastMousePos.Y)
		} else if imgui.IsMouseDragging(imgui.MouseButtonRight) {
			app.scene.Camera.HandlePan(mousePos.X-lastMousePos.X, mousePos.Y-lastMousePos.Y)
		}
		lastMousePos = mousePos

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			app.scene.Camera.HandleZoom(wheel)
		}
	}

	// Controls row
	if imgui.Button("Reset View") {
		app.scene.ResetCamera()
	}
	imgui.SameLine()
	if imgui.Button("Background") {
		app.scene.CycleBackground()
	}
	imgui.SameLine()
	wireframe := app.scene.Wireframe()
	if imgui.Checkbox("Wireframe", &wireframe) {
		app.scene.ToggleWireframe()
	}
	imgui.SameLine()
	bounds := app.scene.ShowBounds()
	if imgui.Checkbox("Bounds", &bounds) {
		app.scene.ToggleBounds()
	}
	imgui.SameLine()
	if imgui.Button("Screenshot") {
		app.screenshotRequested = true
	}
	imgui.SameLine()
	if imgui.Button("Save As...") {
		app.saveModelDialog()
	}

	switch {
	case app.loading:
		imgui.TextDisabled("Loading model...")
	case app.scene.HasMesh():
		imgui.Text(app.modelStats)
		imgui.SameLine()
		imgui.TextDisabled("(drag to orbit, right-drag to pan, scroll to zoom)")
	default:
		imgui.TextDisabled("No model loaded. Generate one or open a local PLY.")
	}
}

// captureThumbnail reads back the viewer framebuffer, downscales it and
// caches the result as a gallery tile keyed by artifact filename.
func (app *App) captureThumbnail(name string) {
	pixels, w, h := app.scene.CaptureImage()
	if pixels == nil {
		return
	}

	img := &image.RGBA{Pix: pixels, Stride: int(w) * 4, Rect: image.Rect(0, 0, int(w), int(h))}
	thumb := debug.Thumbnail(img, thumbnailSize)

	if old := app.thumbnails[name]; old != nil {
		old.Release()
	}
	app.thumbnails[name] = backend.NewTextureFromRgba(thumb)
}
