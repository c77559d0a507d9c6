package tutorial

import "strings"

// Progress tracks a single session's position in the onboarding sequence.
// One instance exists per session; it is mutated only by the Machine
// transition methods.
type Progress struct {
	Active       bool             `json:"active"`
	CurrentIndex int              `json:"current_index"`
	Completed    bool             `json:"completed"`
	Visited      map[int]struct{} `json:"-"`
}

// NewProgress returns a progress value in the start state: inactive,
// cursor at zero, nothing visited.
func NewProgress() *Progress {
	return &Progress{Visited: make(map[int]struct{})}
}

// VisitedIndices returns the visited set as a slice for rendering
// progress indicators. Order is unspecified.
func (p *Progress) VisitedIndices() []int {
	indices := make([]int, 0, len(p.Visited))
	for i := range p.Visited {
		indices = append(indices, i)
	}
	return indices
}

// Machine owns the fixed step sequence and applies transitions to a
// session's Progress. Transitions saturate rather than fail: the wizard
// must survive rapid double-clicks without ever crashing the host UI.
type Machine struct {
	steps []Step
}

// NewMachine creates a machine over the default onboarding sequence.
func NewMachine() *Machine {
	return &Machine{steps: defaultSteps}
}

// NewMachineWithSteps creates a machine over a custom sequence.
func NewMachineWithSteps(steps []Step) *Machine {
	return &Machine{steps: steps}
}

// Steps returns the full step sequence.
func (m *Machine) Steps() []Step {
	return m.steps
}

// StepCount returns the number of steps, including the terminal step.
func (m *Machine) StepCount() int {
	return len(m.steps)
}

// Start activates the wizard and resets the progress to the first step.
func (m *Machine) Start(p *Progress) {
	p.Active = true
	p.CurrentIndex = 0
	p.Completed = false
	p.Visited = make(map[int]struct{})
}

// CurrentStep returns the step the session should be shown. When the
// wizard is inactive or the sequence is empty it returns an empty step
// rather than failing.
func (m *Machine) CurrentStep(p *Progress) Step {
	if !p.Active || len(m.steps) == 0 {
		return Step{}
	}
	if p.CurrentIndex < len(m.steps) {
		return m.steps[p.CurrentIndex]
	}
	return m.steps[len(m.steps)-1]
}

// Advance moves the cursor forward one step. Reaching (or passing) the
// final index collapses into the terminal condition: the cursor pins to
// the last step, Completed is set, and the wizard stays visible until
// the user explicitly leaves. Advancing past the terminal step is a no-op.
func (m *Machine) Advance(p *Progress) {
	if !p.Active || len(m.steps) == 0 {
		return
	}
	last := len(m.steps) - 1
	if p.CurrentIndex >= last {
		return
	}
	p.Visited[p.CurrentIndex] = struct{}{}
	if p.CurrentIndex+1 >= last {
		p.CurrentIndex = last
		p.Completed = true
		return
	}
	p.CurrentIndex++
}

// Retreat moves the cursor back one step, saturating at the first step.
// It never touches Completed or the visited set.
func (m *Machine) Retreat(p *Progress) {
	if !p.Active || p.CurrentIndex <= 0 {
		return
	}
	p.CurrentIndex--
}

// Skip dismisses the wizard from any state. Irreversible for the session
// except via Restart.
func (m *Machine) Skip(p *Progress) {
	p.Active = false
	p.Completed = true
}

// Complete marks the wizard finished and hides it, pinning the cursor to
// the terminal step. Used when the final step is explicitly dismissed.
func (m *Machine) Complete(p *Progress) {
	p.Active = false
	p.Completed = true
	if len(m.steps) > 0 {
		p.CurrentIndex = len(m.steps) - 1
	}
}

// Restart fully resets the progress and reactivates the wizard.
func (m *Machine) Restart(p *Progress) {
	m.Start(p)
}

// StepForPage returns the first step associated with the given page name.
// The lookup is case-insensitive and resolves navigation display names
// through the alias table. The second return is the step index; ok is
// false when no step matches.
func (m *Machine) StepForPage(page string) (Step, int, bool) {
	normalized := strings.ToLower(canonicalPage(page))
	for i, step := range m.steps {
		if strings.ToLower(step.Page) == normalized {
			return step, i, true
		}
	}
	return Step{}, 0, false
}
