package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/meshforge/internal/generation"
)

const trianglePLY = `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
4 0 0
0 2 0
3 0 1 2
`

func newTestLoader(t *testing.T, payloads map[string]string) *Loader {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /download/{file}", func(w http.ResponseWriter, r *http.Request) {
		body, ok := payloads[r.PathValue("file")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := generation.NewClient(generation.Config{BaseURL: srv.URL})
	return New(client)
}

func waitResult(t *testing.T, l *Loader) Result {
	t.Helper()
	select {
	case res := <-l.Results():
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for load result")
		return Result{}
	}
}

func TestLoadFromServer(t *testing.T) {
	l := newTestLoader(t, map[string]string{"tree.ply": trianglePLY})

	l.Load(context.Background(), "tree.ply")
	res := waitResult(t, l)

	if res.Err != nil {
		t.Fatalf("Load failed: %v", res.Err)
	}
	if res.Name != "tree.ply" {
		t.Errorf("Name = %q, want tree.ply", res.Name)
	}
	if res.Mesh.VertexCount() != 3 || res.Mesh.FaceCount() != 1 {
		t.Errorf("mesh = %d vertices %d faces, want 3/1",
			res.Mesh.VertexCount(), res.Mesh.FaceCount())
	}

	// The mesh arrives normalized to the canonical envelope.
	if got := res.Mesh.Bounds.MaxDimension(); got < 1.999 || got > 2.001 {
		t.Errorf("normalized MaxDimension = %v, want 2", got)
	}
	if res.Normalization.MaxDim != 4 {
		t.Errorf("Normalization.MaxDim = %v, want original extent 4", res.Normalization.MaxDim)
	}
}

func TestLoadMissingPayload(t *testing.T) {
	l := newTestLoader(t, nil)

	l.Load(context.Background(), "ghost.ply")
	res := waitResult(t, l)

	if res.Err == nil {
		t.Fatal("expected error for missing payload")
	}
	if !generation.IsServer(res.Err) {
		t.Errorf("error kind = %v, want server", generation.KindOf(res.Err))
	}
	if res.Mesh != nil {
		t.Error("Mesh set alongside error")
	}
}

func TestLoadMalformedPayload(t *testing.T) {
	l := newTestLoader(t, map[string]string{"bad.ply": "not a ply file"})

	l.Load(context.Background(), "bad.ply")
	res := waitResult(t, l)

	if res.Err == nil {
		t.Fatal("expected parse error")
	}
	if !generation.IsParse(res.Err) {
		t.Errorf("error kind = %v, want parse", generation.KindOf(res.Err))
	}
}

func TestLoadServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := generation.NewClient(generation.Config{BaseURL: srv.URL})
	srv.Close()

	l := New(client)
	l.Load(context.Background(), "any.ply")
	res := waitResult(t, l)

	if !generation.IsTransport(res.Err) {
		t.Errorf("error kind = %v, want transport", generation.KindOf(res.Err))
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.ply")
	if err := os.WriteFile(path, []byte(trianglePLY), 0o644); err != nil {
		t.Fatal(err)
	}

	res := FromFile(path)

	if res.Err != nil {
		t.Fatalf("FromFile failed: %v", res.Err)
	}
	if res.Name != "disk.ply" {
		t.Errorf("Name = %q, want disk.ply", res.Name)
	}
	if res.Mesh.VertexCount() != 3 {
		t.Errorf("VertexCount = %d, want 3", res.Mesh.VertexCount())
	}
}

func TestFromFileMissing(t *testing.T) {
	res := FromFile(filepath.Join(t.TempDir(), "nope.ply"))

	if res.Err == nil {
		t.Fatal("expected error for missing file")
	}
	if !generation.IsTransport(res.Err) {
		t.Errorf("error kind = %v, want transport", generation.KindOf(res.Err))
	}
}
