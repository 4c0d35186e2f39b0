package texplore

import "fmt"

// CommandKind enumerates the commands an external UI can issue.
type CommandKind uint8

const (
	CommandTexture CommandKind = iota + 1 // all channels to Index
	CommandChannel                        // Channel to Index
	CommandRandom
	CommandDomain // replace the domain with Domain
	CommandSave   // export the last frame to Path
	CommandQuit
)

var commandNames = map[CommandKind]string{
	CommandTexture: "texture",
	CommandChannel: "channel",
	CommandRandom:  "random",
	CommandDomain:  "domain",
	CommandSave:    "save",
	CommandQuit:    "quit",
}

func (k CommandKind) String() string {
	if s, ok := commandNames[k]; ok {
		return s
	}
	return fmt.Sprintf("CommandKind(%d)", uint8(k))
}

// Command is a tagged variant: Kind decides which of the other fields are
// meaningful.
type Command struct {
	Kind    CommandKind
	Channel Channel
	Index   Index
	Domain  Domain
	Path    string
}

// TextureCommand selects formula i on every channel.
func TextureCommand(i Index) Command { return Command{Kind: CommandTexture, Index: i} }

// ChannelCommand selects formula i (or Off) on channel ch.
func ChannelCommand(ch Channel, i Index) Command {
	return Command{Kind: CommandChannel, Channel: ch, Index: i}
}

// RandomCommand picks random formulas.
func RandomCommand() Command { return Command{Kind: CommandRandom} }

// DomainCommand replaces the coordinate domain.
func DomainCommand(d Domain) Command { return Command{Kind: CommandDomain, Domain: d} }

// SaveCommand asks for the displayed frame to be written to path.
func SaveCommand(path string) Command { return Command{Kind: CommandSave, Path: path} }

// QuitCommand asks the UI to exit.
func QuitCommand() Command { return Command{Kind: CommandQuit} }

func (c Command) String() string {
	switch c.Kind {
	case CommandTexture:
		return fmt.Sprintf("texture %s", c.Index)
	case CommandChannel:
		return fmt.Sprintf("%s %s", c.Channel, c.Index)
	case CommandDomain:
		return fmt.Sprintf("domain %s", c.Domain)
	case CommandSave:
		if c.Path == "" {
			return "save"
		}
		return "save " + c.Path
	}
	return c.Kind.String()
}

// Effect tells the caller what to do after a command was applied.
type Effect uint8

const (
	EffectNone   Effect = iota
	EffectRedraw        // state changed; render a new frame
	EffectSave          // export the displayed frame
	EffectQuit          // leave the UI loop
)

// Dispatch applies cmd. State commands mutate the explorer and return
// EffectRedraw; save and quit touch no state and are handed back to the
// caller. On error the state is unchanged and EffectNone is returned.
func (e *Explorer) Dispatch(cmd Command) (Effect, error) {
	var err error
	switch cmd.Kind {
	case CommandTexture:
		err = e.SetTexture(cmd.Index)
	case CommandChannel:
		err = e.SetChannel(cmd.Channel, cmd.Index)
	case CommandRandom:
		e.Randomize()
	case CommandDomain:
		err = e.SetDomain(cmd.Domain)
	case CommandSave:
		return EffectSave, nil
	case CommandQuit:
		return EffectQuit, nil
	default:
		return EffectNone, fmt.Errorf("texplore: unknown command %v: %w", cmd.Kind, ErrInvalidArgument)
	}
	if err != nil {
		return EffectNone, err
	}
	return EffectRedraw, nil
}
