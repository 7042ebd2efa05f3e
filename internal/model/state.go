package model

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State is the lifecycle position of a Model.
type State string

// State constants double as statekit state ids.
const (
	StateNoProject = "no_project"
	StateOpen      = "open"
	StateModified  = "modified"
)

const (
	eventNew   = "new"
	eventLoad  = "load"
	eventEdit  = "edit"
	eventSave  = "save"
	eventClose = "close"
)

type lifecycleContext struct{}

// lifecycle drives NoProject -> Open <-> Modified -> NoProject.
type lifecycle struct {
	interpreter *statekit.Interpreter[lifecycleContext]
}

func newLifecycle() (*lifecycle, error) {
	builder := statekit.NewMachine[lifecycleContext]("project-model").
		WithInitial(statekit.StateID(StateNoProject)).
		WithContext(lifecycleContext{})

	builder.State(StateNoProject).
		On(eventNew).Target(StateOpen).
		On(eventLoad).Target(StateOpen).
		Done()

	builder.State(StateOpen).
		On(eventEdit).Target(StateModified).
		On(eventClose).Target(StateNoProject).
		Done()

	builder.State(StateModified).
		On(eventSave).Target(StateOpen).
		On(eventClose).Target(StateNoProject).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building project lifecycle: %w", err)
	}
	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()
	return &lifecycle{interpreter: interpreter}, nil
}

func (l *lifecycle) current() State {
	return State(l.interpreter.State().Value)
}

// send fires event and returns the states before and after. An event with no
// transition from the current state is an error.
func (l *lifecycle) send(event string) (State, State, error) {
	before := l.current()
	l.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := l.current()
	if before == after {
		return before, after, fmt.Errorf("event %q not allowed in state %q", event, before)
	}
	return before, after, nil
}
