// Event and result plumbing between worker goroutines and the frame loop.
// All app state mutations happen here, on the main thread.
package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Faultbox/meshforge/internal/generation"
	"github.com/Faultbox/meshforge/internal/loader"
)

// drainEvents folds pending controller events into the UI state.
func (app *App) drainEvents() {
	for {
		select {
		case ev := <-app.controller.Events():
			app.handleEvent(ev)
		default:
			return
		}
	}
}

func (app *App) handleEvent(ev generation.Event) {
	switch ev.Type {
	case generation.EventProgress:
		app.activeJob = ev.Job
		app.jobRunning = true

	case generation.EventCompleted:
		app.activeJob = ev.Job
		app.jobRunning = false
		app.lastFiles = ev.Job.Files
		app.audio.PlayComplete()
		app.showNotification("Generation complete")
		app.refreshGallery()
		if primary := ev.Job.Files.Primary(); primary != "" {
			app.loadModel(primary, generation.SafeName(ev.Job.Prompt))
		}

	case generation.EventError:
		app.jobRunning = false
		if ev.Err != nil {
			app.lastError = ev.Err.Error()
		} else {
			app.lastError = ev.Job.Message
		}
		app.audio.PlayError()

	case generation.EventCancelled:
		app.jobRunning = false
		app.showNotification("Generation cancelled")
	}
}

// loadModel starts an async fetch+parse of a server artifact. display
// becomes the viewer's model name once the load lands.
func (app *App) loadModel(filename, display string) {
	app.loading = true
	app.pendingName = display
	app.loader.Load(context.Background(), filename)
}

// drainResults installs finished loads into the scene.
func (app *App) drainResults() {
	for {
		select {
		case res := <-app.loader.Results():
			app.applyResult(res)
		default:
			return
		}
	}
}

func (app *App) applyResult(res loader.Result) {
	app.loading = false
	if res.Err != nil {
		app.lastError = res.Err.Error()
		app.showNotification("Load failed")
		return
	}

	app.scene.InstallMesh(res.Mesh)
	app.scene.ResetCamera()

	app.modelName = app.pendingName
	if app.modelName == "" {
		app.modelName = generation.SafeName(res.Name)
	}
	app.loadedFile = res.Name
	app.modelStats = fmt.Sprintf("%d vertices | %d faces | scale %.3f",
		res.Mesh.VertexCount(), res.Mesh.FaceCount(), res.Normalization.Scale)
	app.thumbPending = res.Name
	app.lastError = ""
}

// drainLocalPicks loads a PLY picked from the native file dialog.
func (app *App) drainLocalPicks() {
	select {
	case path := <-app.localPicks:
		base := filepath.Base(path)
		app.pendingName = generation.SafeName(strings.TrimSuffix(base, filepath.Ext(base)))
		app.lastFiles = generation.Files{}
		app.applyResult(loader.FromFile(path))
	default:
	}
}

// refreshGallery fetches the server model list in the background.
func (app *App) refreshGallery() {
	if app.galleryLoading {
		return
	}
	app.galleryLoading = true
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		models, err := app.client.ListModels(ctx)
		app.galleryCh <- galleryResult{models: models, err: err}
	}()
}

func (app *App) drainGallery() {
	select {
	case res := <-app.galleryCh:
		app.galleryLoading = false
		if res.err != nil {
			app.galleryErr = res.err.Error()
			return
		}
		app.galleryErr = ""
		app.models = res.models
	default:
	}
}

func (app *App) drainNotices() {
	for {
		select {
		case msg := <-app.notices:
			app.showNotification(msg)
		default:
			return
		}
	}
}
