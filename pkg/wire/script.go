// Package wire converts generated scripts to and from the CommandScript
// flatbuffer published on the script topic.
package wire

import (
	"fmt"
	"time"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/open-teleop/pathscript/pkg/flatbuffers/pathscript/command"
)

// Script is the decoded form of a CommandScript table.
type Script struct {
	ID          string
	Selector    string
	Timestamp   time.Time
	SampleCount int
	Steps       []int
	Commands    []string
}

// EncodeScript serializes s into a finished CommandScript buffer.
func EncodeScript(s Script) []byte {
	builder := flatbuffers.NewBuilder(1024)

	commandOffsets := make([]flatbuffers.UOffsetT, len(s.Commands))
	for i, c := range s.Commands {
		commandOffsets[i] = builder.CreateString(c)
	}
	command.CommandScriptStartCommandsVector(builder, len(commandOffsets))
	for i := len(commandOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(commandOffsets[i])
	}
	commands := builder.EndVector(len(commandOffsets))

	command.CommandScriptStartStepsVector(builder, len(s.Steps))
	for i := len(s.Steps) - 1; i >= 0; i-- {
		builder.PrependUint32(uint32(s.Steps[i]))
	}
	steps := builder.EndVector(len(s.Steps))

	id := builder.CreateString(s.ID)
	selector := builder.CreateString(s.Selector)

	command.CommandScriptStart(builder)
	command.CommandScriptAddId(builder, id)
	command.CommandScriptAddSelector(builder, selector)
	command.CommandScriptAddTimestampNs(builder, s.Timestamp.UnixNano())
	command.CommandScriptAddCommands(builder, commands)
	command.CommandScriptAddSampleCount(builder, uint32(s.SampleCount))
	command.CommandScriptAddSteps(builder, steps)
	root := command.CommandScriptEnd(builder)

	command.FinishCommandScriptBuffer(builder, root)
	return builder.FinishedBytes()
}

// DecodeScript reads a CommandScript buffer. Truncated or corrupt input is
// reported as an error.
func DecodeScript(buf []byte) (s Script, err error) {
	if len(buf) < flatbuffers.SizeUOffsetT {
		return Script{}, fmt.Errorf("command script too short: %d bytes", len(buf))
	}

	defer func() {
		if r := recover(); r != nil {
			s, err = Script{}, fmt.Errorf("malformed command script: %v", r)
		}
	}()

	msg := command.GetRootAsCommandScript(buf, 0)

	s = Script{
		ID:          string(msg.Id()),
		Selector:    string(msg.Selector()),
		SampleCount: int(msg.SampleCount()),
		Steps:       make([]int, msg.StepsLength()),
		Commands:    make([]string, msg.CommandsLength()),
	}
	if ns := msg.TimestampNs(); ns != 0 {
		s.Timestamp = time.Unix(0, ns).UTC()
	}
	for i := range s.Steps {
		s.Steps[i] = int(msg.Steps(i))
	}
	for i := range s.Commands {
		s.Commands[i] = string(msg.Commands(i))
	}
	return s, nil
}
