package reveal

import (
	"encoding/json"
	"fmt"
)

// scriptAction is a parsed test script action.
type scriptAction uint8

const (
	actionScroll scriptAction = iota
	actionScrollTo
	actionPointer
	actionPointerPath
	actionWait
	actionSettle
	actionScreenshot
)

var scriptActions = map[string]scriptAction{
	"scroll":      actionScroll,
	"scrollTo":    actionScrollTo,
	"pointer":     actionPointer,
	"pointerPath": actionPointerPath,
	"wait":        actionWait,
	"settle":      actionSettle,
	"screenshot":  actionScreenshot,
}

// defaultSettleFrames bounds a "settle" step that names no frame limit.
const defaultSettleFrames = 600

// scriptStep is one decoded step. Coordinates are in viewport space for
// pointer actions and scroll offsets for scroll actions.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`

	action scriptAction
}

// TestRunner replays a JSON script of scroll and pointer input across frames
// so effects can be exercised without a user. Attach to a Scene via
// SetTestRunner.
//
//	{"steps": [
//	  {"action": "scrollTo", "y": 1200},
//	  {"action": "settle"},
//	  {"action": "screenshot", "label": "revealed"},
//	  {"action": "pointerPath", "fromX": 0, "fromY": 0, "toX": 400, "toY": 300, "frames": 30}
//	]}
//
// "wait" holds for a fixed number of frames; "settle" holds until no frame
// request is pending and no node is animating, or Frames (default 600)
// elapse.
type TestRunner struct {
	steps []scriptStep
	next  int

	// hold is the number of frames left on a wait; settling is true while
	// a settle step is in progress.
	hold     int
	settling bool
	done     bool
}

// LoadTestScript parses and validates a JSON test script.
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
	for i := range script.Steps {
		st := &script.Steps[i]
		act, ok := scriptActions[st.Action]
		if !ok {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Frames < 0 {
			return nil, fmt.Errorf("parse test script: step %d: negative frames", i)
		}
		st.action = act
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. Scene.Update steps it
// before input is processed each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run and its input has been consumed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the script by at most one step per frame. Injected input
// drains before the next step runs.
func (r *TestRunner) step(s *Scene) {
	if r.done || len(s.injectQueue) > 0 {
		return
	}
	if r.settling {
		r.hold--
		if r.hold > 0 && !s.idle() {
			return
		}
		r.settling, r.hold = false, 0
	}
	if r.hold > 0 {
		r.hold--
		return
	}
	if r.next == len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.next]
	r.next++
	r.apply(s, st)

	if r.next == len(r.steps) && r.hold == 0 && !r.settling && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) apply(s *Scene, st scriptStep) {
	switch st.action {
	case actionScroll:
		s.InjectScroll(st.X, st.Y)
	case actionScrollTo:
		s.InjectScrollTo(st.X, st.Y)
	case actionPointer:
		s.InjectPointer(st.X, st.Y)
	case actionPointerPath:
		s.InjectPointerPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case actionScreenshot:
		s.Screenshot(st.Label)
	case actionWait:
		// The frame that reads the step counts toward the wait.
		r.hold = max(st.Frames-1, 0)
	case actionSettle:
		frames := st.Frames
		if frames == 0 {
			frames = defaultSettleFrames
		}
		r.settling = true
		r.hold = frames - 1
	}
}

// idle reports whether the scene has no pending frame work and no running
// style transition.
func (s *Scene) idle() bool {
	return s.scheduler.Pending() == 0 && !subtreeAnimating(s.root)
}

func subtreeAnimating(n *Node) bool {
	if n.Animating() {
		return true
	}
	for _, c := range n.children {
		if subtreeAnimating(c) {
			return true
		}
	}
	return false
}
