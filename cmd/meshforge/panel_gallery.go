// Gallery panel: server model list with thumbnails and click-to-load.
package main

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/meshforge/internal/generation"
)

// renderGalleryPanel renders the previously generated model list.
func (app *App) renderGalleryPanel() {
	imgui.Text("Gallery:")
	imgui.SameLine()
	if app.galleryLoading {
		imgui.TextDisabled("refreshing...")
	} else if imgui.Button("Refresh") {
		app.refreshGallery()
	}

	if app.galleryErr != "" {
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), "Gallery unavailable")
	}

	if imgui.BeginChildStrV("GalleryList", imgui.NewVec2(0, 0), imgui.ChildFlagsBorders, 0) {
		if len(app.models) == 0 && app.galleryErr == "" {
			imgui.TextDisabled("No models on server yet")
		}
		for _, m := range app.models {
			app.renderGalleryEntry(m)
		}
	}
	imgui.EndChild()
}

func (app *App) renderGalleryEntry(m generation.ModelInfo) {
	if tex := app.thumbnails[m.PLY]; tex != nil {
		imgui.ImageWithBgV(
			tex.ID,
			imgui.NewVec2(48, 48),
			imgui.NewVec2(0, 0),
			imgui.NewVec2(1, 1),
			imgui.NewVec4(0, 0, 0, 0),
			imgui.NewVec4(1, 1, 1, 1),
		)
		imgui.SameLine()
	}

	created := time.Unix(int64(m.Created), 0).Format("2006-01-02 15:04")
	label := fmt.Sprintf("%s\n%s##%s", m.Name, created, m.PLY)

	selected := m.PLY != "" && m.PLY == app.loadedFile
	if imgui.SelectableBoolV(label, selected, 0, imgui.NewVec2(0, 0)) {
		app.lastFiles = generation.Files{PLY: m.PLY}
		app.loadModel(m.PLY, generation.SafeName(m.Name))
	}
}
