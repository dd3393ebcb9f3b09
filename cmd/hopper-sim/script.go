package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/plus3/hopper/game"
)

// Step holds a set of actions for a number of ticks. Actions count as pressed
// on the first tick of the step only.
type Step struct {
	Actions []game.Action
	Ticks   int
}

var actionNames = map[string]game.Action{
	"left":  game.ActionLeft,
	"right": game.ActionRight,
	"up":    game.ActionJump,
	"jump":  game.ActionJump,
	"reset": game.ActionReset,
}

// ParseScript reads a comma separated list of "action:ticks" steps. Actions may
// be combined with '+', and "idle" holds nothing, e.g. "right:60,right+up:1,idle:30".
func ParseScript(src string) ([]Step, error) {
	var steps []Step
	for i, part := range strings.Split(src, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		names, count, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("step %d %q: want action:ticks", i+1, part)
		}
		ticks, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || ticks <= 0 {
			return nil, fmt.Errorf("step %d %q: ticks must be a positive integer", i+1, part)
		}

		step := Step{Ticks: ticks}
		for _, name := range strings.Split(names, "+") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "idle" {
				continue
			}
			action, ok := actionNames[name]
			if !ok {
				return nil, fmt.Errorf("step %d %q: unknown action %q", i+1, part, name)
			}
			step.Actions = append(step.Actions, action)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Ticks is the total length of a script.
func Ticks(steps []Step) int {
	n := 0
	for _, s := range steps {
		n += s.Ticks
	}
	return n
}

// scriptInput replays steps as a game.InputSource. Advance must be called once
// per tick before the world steps.
type scriptInput struct {
	steps []Step
	step  int
	tick  int
}

func (in *scriptInput) Advance() bool {
	if in.step >= len(in.steps) {
		return false
	}
	if in.tick >= in.steps[in.step].Ticks {
		in.step++
		in.tick = 0
		if in.step >= len(in.steps) {
			return false
		}
	}
	in.tick++
	return true
}

func (in *scriptInput) current() *Step {
	if in.step >= len(in.steps) {
		return nil
	}
	return &in.steps[in.step]
}

func (in *scriptInput) Held(a game.Action) bool {
	s := in.current()
	if s == nil {
		return false
	}
	for _, action := range s.Actions {
		if action == a {
			return true
		}
	}
	return false
}

func (in *scriptInput) Pressed(a game.Action) bool {
	return in.tick == 1 && in.Held(a)
}
