package scene

import (
	"fmt"
	"strings"

	"github.com/Faultbox/holoframe/pkg/math"
)

// CommandKind identifies a trigger delivered to the scene.
type CommandKind int

const (
	CommandFloat    CommandKind = iota // toggle the floating pose
	CommandSelect                      // grab the frame
	CommandMove                        // drag the grabbed frame by Delta
	CommandRelease                     // let go; the frame returns to its pose
	CommandNext                        // show the next image
	CommandPrevious                    // show the previous image
)

var commandNames = map[CommandKind]string{
	CommandFloat:    "float",
	CommandSelect:   "select",
	CommandMove:     "move",
	CommandRelease:  "release",
	CommandNext:     "next",
	CommandPrevious: "prev",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// ParseCommandKind resolves a command name as used by the remote controls.
func ParseCommandKind(name string) (CommandKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "previous" {
		return CommandPrevious, nil
	}
	for k, n := range commandNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", name)
}

// Command is one queued trigger.
type Command struct {
	Kind  CommandKind
	Delta math.Vec3 // CommandMove only
}
