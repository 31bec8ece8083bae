// Package loader turns generated payloads into display-ready meshes:
// fetch, parse, and normalize run off the main thread, results arrive
// on a channel the render loop drains.
package loader

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshforge/internal/engine/model"
	"github.com/Faultbox/meshforge/internal/generation"
	"github.com/Faultbox/meshforge/internal/logger"
	"github.com/Faultbox/meshforge/pkg/formats"
)

// Result is the outcome of one load. Exactly one of Mesh or Err is
// set.
type Result struct {
	Mesh          *model.Mesh
	Normalization model.Normalization
	Name          string
	Err           error
}

// Loader prepares model payloads in the background.
type Loader struct {
	client  *generation.Client
	results chan Result
}

// New creates a loader fetching payloads through the given client.
func New(client *generation.Client) *Loader {
	return &Loader{
		client:  client,
		results: make(chan Result, 4),
	}
}

// Results returns the channel load outcomes are delivered on.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Load fetches the named payload from the server and prepares it in
// the background. The outcome arrives on Results.
func (l *Loader) Load(ctx context.Context, filename string) {
	go func() {
		start := time.Now()
		res := l.fetch(ctx, filename)
		if res.Err != nil {
			logger.Warn("model load failed",
				zap.String("file", filename),
				zap.Error(res.Err))
		} else {
			logger.Info("model loaded",
				zap.String("file", filename),
				zap.Int("vertices", res.Mesh.VertexCount()),
				zap.Int("faces", res.Mesh.FaceCount()),
				zap.Duration("elapsed", time.Since(start)))
		}
		l.results <- res
	}()
}

func (l *Loader) fetch(ctx context.Context, filename string) Result {
	data, err := l.client.Fetch(ctx, filename)
	if err != nil {
		return Result{Name: filename, Err: err}
	}
	return prepare(filename, data)
}

// FromFile loads a payload from the local filesystem. Runs
// synchronously; callers wanting background behavior wrap it
// themselves.
func FromFile(path string) Result {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Name: name, Err: &generation.Error{
			Kind:    generation.KindTransport,
			Op:      "load",
			Message: "reading " + path,
			Err:     err,
		}}
	}
	return prepare(name, data)
}

// prepare parses and normalizes raw payload bytes.
func prepare(name string, data []byte) Result {
	ply, err := formats.ParsePLY(data)
	if err != nil {
		return Result{Name: name, Err: &generation.Error{
			Kind:    generation.KindParse,
			Op:      "load",
			Message: "parsing " + name,
			Err:     err,
		}}
	}

	mesh := model.BuildMesh(ply)
	if mesh == nil {
		return Result{Name: name, Err: &generation.Error{
			Kind:    generation.KindParse,
			Op:      "load",
			Message: name + " has no vertices",
		}}
	}

	norm := model.NormalizeMesh(mesh)
	return Result{Mesh: mesh, Normalization: norm, Name: name}
}
