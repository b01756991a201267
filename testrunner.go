package artistloader

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one action of a JSON test script. Coordinates are screen
// space, as for the Inject methods.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Text   string  `json:"text,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptActions queues the input of every action except "wait", which the
// runner counts itself.
var scriptActions = map[string]func(s *Scene, st scriptStep){
	"screenshot": func(s *Scene, st scriptStep) { s.Screenshot(st.Label) },
	"click":      func(s *Scene, st scriptStep) { s.InjectClick(st.X, st.Y) },
	"rightclick": func(s *Scene, st scriptStep) { s.InjectRightClick(st.X, st.Y) },
	"move":       func(s *Scene, st scriptStep) { s.InjectMove(st.X, st.Y) },
	"wheel":      func(s *Scene, st scriptStep) { s.InjectWheel(st.X, st.Y, st.DY) },
	"type":       func(s *Scene, st scriptStep) { s.InjectText(st.Text) },
	"key":        func(s *Scene, st scriptStep) { scriptKeys[st.Key](s) },
	"drag": func(s *Scene, st scriptStep) {
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	},
}

var scriptKeys = map[string]func(*Scene){
	"enter":     (*Scene).InjectEnter,
	"escape":    (*Scene).InjectEscape,
	"backspace": (*Scene).InjectBackspace,
}

func (st scriptStep) validate() error {
	if st.Action == "wait" {
		return nil
	}
	if _, ok := scriptActions[st.Action]; !ok {
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if _, ok := scriptKeys[st.Key]; st.Action == "key" && !ok {
		return fmt.Errorf("unknown key %q", st.Key)
	}
	return nil
}

// TestRunner plays a script against a scene, one step per frame once the
// previous step's injected input has drained.
type TestRunner struct {
	steps []scriptStep
	next  int
	idle  int // frames left in a wait step
	done  bool
}

// LoadTestScript parses a script of the form {"steps": [...]}. Every step
// is checked up front so a typo fails before the window opens.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner; it steps at the start of every Update.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether the whole script has played.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(s *Scene) {
	switch {
	case r.done, len(s.injectQueue) > 0:
		return
	case r.idle > 0:
		r.idle--
		return
	case r.next >= len(r.steps):
		r.done = true
		return
	}

	st := r.steps[r.next]
	r.next++
	if st.Action == "wait" {
		r.idle = max(st.Frames-1, 0)
	} else {
		scriptActions[st.Action](s, st)
	}
	r.done = r.next >= len(r.steps) && r.idle == 0 && len(s.injectQueue) == 0
}
