package artistloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/muhammadmuzzammil1998/jsonc"
)

const workflowVersion = 1

// Workflow is the saved form of a scene.
type Workflow struct {
	Version int         `json:"version"`
	Camera  CameraState `json:"camera"`
	Nodes   []NodeState `json:"nodes"`
}

// CameraState is the saved camera position.
type CameraState struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// NodeState is one saved node. Values holds the artist rows in order.
type NodeState struct {
	ID     uint32        `json:"id"`
	Title  string        `json:"title,omitempty"`
	Pos    [2]float64    `json:"pos"`
	Size   [2]float64    `json:"size"`
	Values []ArtistValue `json:"widgets_values"`
}

// Snapshot captures the scene's nodes and camera.
func (s *Scene) Snapshot() Workflow {
	w := Workflow{
		Version: workflowVersion,
		Camera:  CameraState{X: s.camera.X, Y: s.camera.Y, Zoom: s.camera.Zoom},
		Nodes:   make([]NodeState, 0, len(s.nodes)),
	}
	for _, n := range s.nodes {
		w.Nodes = append(w.Nodes, NodeState{
			ID:     n.ID,
			Title:  n.Title,
			Pos:    [2]float64{n.X, n.Y},
			Size:   [2]float64{n.Width, n.userHeight},
			Values: n.Values(),
		})
	}
	return w
}

// Restore replaces the scene's nodes with those in w. Node ids are kept so
// change events line up with the saved file.
func (s *Scene) Restore(w Workflow) {
	s.CloseOverlays()
	s.preview.Hide()
	for _, n := range slices.Clone(s.nodes) {
		s.RemoveNode(n)
	}
	if w.Camera.Zoom > 0 {
		s.camera.X, s.camera.Y = w.Camera.X, w.Camera.Y
		s.camera.Zoom = min(max(w.Camera.Zoom, minZoom), maxZoom)
	}
	for _, ns := range w.Nodes {
		id := ns.ID
		if id == 0 || s.NodeByID(id) != nil {
			s.nextID++
			id = s.nextID
		}
		s.nextID = max(s.nextID, id)
		n := s.addNode(id, ns.Pos[0], ns.Pos[1])
		if ns.Title != "" {
			n.Title = ns.Title
		}
		if ns.Size[0] > 0 {
			n.SetUserSize(ns.Size[0], ns.Size[1])
		}
		n.SetValues(ns.Values)
	}
	s.dirty = true
}

// ParseWorkflow decodes a workflow. Line and block comments are allowed so
// hand-edited files load.
func ParseWorkflow(data []byte) (Workflow, error) {
	var w Workflow
	if err := json.Unmarshal(jsonc.ToJSON(data), &w); err != nil {
		return Workflow{}, fmt.Errorf("artistloader: parse workflow: %w", err)
	}
	if w.Version > workflowVersion {
		return Workflow{}, fmt.Errorf("artistloader: workflow version %d is newer than %d", w.Version, workflowVersion)
	}
	return w, nil
}

// LoadWorkflow reads and parses a workflow file.
func LoadWorkflow(path string) (Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Workflow{}, fmt.Errorf("artistloader: read workflow: %w", err)
	}
	return ParseWorkflow(data)
}

// SaveWorkflow writes w to path through a temporary file so a crash never
// leaves a truncated file.
func SaveWorkflow(path string, w Workflow) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("artistloader: encode workflow: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("artistloader: workflow dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".workflow-*.json")
	if err != nil {
		return fmt.Errorf("artistloader: save workflow: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("artistloader: save workflow: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("artistloader: save workflow: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("artistloader: save workflow: %w", err)
	}
	return nil
}
