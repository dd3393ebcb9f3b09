package main

import (
	"bytes"
	"testing"

	"github.com/plus3/hopper/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	steps, err := ParseScript("idle:10, right:60,right+up:1,,Reset:2")
	require.NoError(t, err)

	assert.Equal(t, []Step{
		{Ticks: 10},
		{Actions: []game.Action{game.ActionRight}, Ticks: 60},
		{Actions: []game.Action{game.ActionRight, game.ActionJump}, Ticks: 1},
		{Actions: []game.Action{game.ActionReset}, Ticks: 2},
	}, steps)
	assert.Equal(t, 73, Ticks(steps))
}

func TestParseScriptErrors(t *testing.T) {
	for _, src := range []string{"right", "right:0", "right:-3", "right:x", "fly:10"} {
		_, err := ParseScript(src)
		assert.Error(t, err, src)
	}
}

func TestScriptInputPressesOnce(t *testing.T) {
	steps, err := ParseScript("up:3,left:2")
	require.NoError(t, err)
	in := &scriptInput{steps: steps}

	var held, pressed, left []bool
	for in.Advance() {
		held = append(held, in.Held(game.ActionJump))
		pressed = append(pressed, in.Pressed(game.ActionJump))
		left = append(left, in.Held(game.ActionLeft))
	}

	assert.Equal(t, []bool{true, true, true, false, false}, held)
	assert.Equal(t, []bool{true, false, false, false, false}, pressed)
	assert.Equal(t, []bool{false, false, false, true, true}, left)
	assert.False(t, in.Advance())
	assert.False(t, in.Held(game.ActionLeft))
}

func TestScriptedRunProducesReport(t *testing.T) {
	steps, err := ParseScript("idle:120,up:1,idle:180")
	require.NoError(t, err)

	input := &scriptInput{steps: steps}
	world, err := game.NewWorld(game.Preset(game.StageGravity), input)
	require.NoError(t, err)

	report := &Report{Stage: game.StageGravity, Script: "idle:120,up:1,idle:180", Steps: len(steps)}
	for input.Advance() {
		world.Step(1.0 / game.TickRate)
		report.Track(world.Player())
	}
	report.Ticks = world.Tick()
	report.End = *world.Player()
	report.Events = *world.Events()
	report.Systems = world.Update.Stats().Systems

	assert.Equal(t, uint64(301), report.Ticks)
	assert.Equal(t, 1, report.Events.Jumps)
	assert.Equal(t, 2, report.Events.Landings)
	assert.True(t, report.End.Grounded)
	assert.Less(t, report.MinY, report.End.Pos.Y)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# Hopper Simulation Report")
	assert.Contains(t, out, "**Stage:** gravity")
	assert.Contains(t, out, "**Jumps:** 1")
	assert.Contains(t, out, "**Last Contact:** segment -1")
	assert.Contains(t, out, "FloorCollisionSystem: 301 runs")
}
