package script

import (
	"strconv"
	"strings"

	"github.com/open-teleop/pathscript/pkg/trajectory"
)

// DefaultMoveVerb is the teleport-with-rotation command of the target protocol.
const DefaultMoveVerb = "minecraft:tp"

// TagSelector returns the selector matching every entity carrying tag.
func TagSelector(tag string) string {
	return "@e[tag=" + tag + "]"
}

func floatToString(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Emitter renders sampled points as protocol commands. Every sample becomes
// exactly two lines: a move and a delay.
type Emitter struct {
	MoveVerb        string
	Selector        string
	DelayTicks      float64
	WithOrientation bool

	lines []string
}

func (e *Emitter) put(line string) {
	e.lines = append(e.lines, line)
}

func (e *Emitter) verb() string {
	if e.MoveVerb == "" {
		return DefaultMoveVerb
	}
	return e.MoveVerb
}

// MoveLine formats one move: "<verb> <selector> x y z[ yaw pitch]" with two
// decimals per number.
func (e *Emitter) MoveLine(s trajectory.SampledPoint) string {
	var b strings.Builder
	b.WriteString(e.verb())
	b.WriteByte(' ')
	b.WriteString(e.Selector)

	for _, v := range s.Position.Components() {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(v, 'f', 2, 64))
	}
	if e.WithOrientation {
		b.WriteByte(' ')
		b.WriteString(formatAngle(s.Yaw))
		b.WriteByte(' ')
		b.WriteString(formatAngle(s.Pitch))
	}
	return b.String()
}

// formatAngle renders degrees with two decimals. Angles that round to zero
// print as 0.00 whatever their sign.
func formatAngle(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// DelayLine formats the pause that follows every move.
func (e *Emitter) DelayLine() string {
	return "delay " + floatToString(e.DelayTicks)
}

// Emit renders samples in order and returns the accumulated lines.
func (e *Emitter) Emit(samples []trajectory.SampledPoint) []string {
	e.lines = make([]string, 0, 2*len(samples))
	delay := e.DelayLine()
	for _, s := range samples {
		e.put(e.MoveLine(s))
		e.put(delay)
	}
	return e.lines
}
