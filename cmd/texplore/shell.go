package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gogpu/texplore"
)

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Explore textures interactively",
		Long: `shell reads commands from standard input, one per line:

  q, Q, Esc        quit
  s [path]         save the displayed frame
  r                random texture
  c                change coordinates
  texture N        formula N (0-9) on every channel
  red|green|blue N formula N (0-9) or "off" on one channel
  show             print the current state
  menu             print the menu`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.newExplorer()
			if err != nil {
				return err
			}
			defer e.Close()
			sh := &shell{
				e:           e,
				in:          bufio.NewScanner(cmd.InOrStdin()),
				out:         cmd.OutOrStdout(),
				interactive: cmd.InOrStdin() == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())),
				output:      a.conf.Output,
				scale:       a.conf.Scale,
			}
			return sh.run(cmd.Context())
		},
	}
}

// shell is a line-oriented UI over an Explorer. It keeps the last rendered
// pixmap as the displayed frame.
type shell struct {
	e           *texplore.Explorer
	in          *bufio.Scanner
	out         io.Writer
	interactive bool
	output      string
	scale       int

	displayed *texplore.Pixmap
}

var errQuit = errors.New("quit")

func (sh *shell) run(ctx context.Context) error {
	if err := sh.redraw(ctx); err != nil {
		return err
	}
	for {
		line, ok := sh.prompt("> ")
		if !ok {
			return sh.in.Err()
		}
		err := sh.exec(ctx, line)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, io.EOF):
			return sh.in.Err()
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		case err != nil:
			sh.printf("error: %v\n", err)
		}
	}
}

func (sh *shell) prompt(p string) (string, bool) {
	if sh.interactive {
		sh.printf("%s", p)
	}
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

func (sh *shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(sh.out, format, args...)
}

func (sh *shell) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	var cmd texplore.Command
	switch name := fields[0]; name {
	case "q", "Q", "\x1b", "quit", "exit":
		cmd = texplore.QuitCommand()
	case "s", "save":
		path := sh.output
		if len(fields) > 1 {
			path = fields[1]
		}
		cmd = texplore.SaveCommand(path)
	case "r", "random":
		cmd = texplore.RandomCommand()
	case "c", "coords":
		d, err := sh.readDomain()
		if err != nil {
			return err
		}
		cmd = texplore.DomainCommand(d)
	case "texture":
		i, err := indexArg(fields)
		if err != nil {
			return err
		}
		cmd = texplore.TextureCommand(i)
	case "red", "green", "blue":
		ch, err := texplore.ParseChannel(name)
		if err != nil {
			return err
		}
		i, err := indexArg(fields)
		if err != nil {
			return err
		}
		cmd = texplore.ChannelCommand(ch, i)
	case "show":
		sh.show()
		return nil
	case "menu":
		return printMenu(sh.out, sh.e.Menu())
	case "help", "?":
		sh.printf("commands: q s r c texture red green blue show menu\n")
		return nil
	default:
		return fmt.Errorf("unknown command %q (try help)", name)
	}

	effect, err := sh.e.Dispatch(cmd)
	if err != nil {
		return err
	}
	switch effect {
	case texplore.EffectQuit:
		return errQuit
	case texplore.EffectSave:
		if err := sh.e.Save(sh.displayed, cmd.Path, texplore.ExportOptions{Scale: sh.scale}); err != nil {
			return err
		}
		sh.printf("saved %s\n", cmd.Path)
	case texplore.EffectRedraw:
		return sh.redraw(ctx)
	}
	return nil
}

func indexArg(fields []string) (texplore.Index, error) {
	if len(fields) != 2 {
		return 0, fmt.Errorf("usage: %s N", fields[0])
	}
	return texplore.ParseIndex(fields[1])
}

func (sh *shell) redraw(ctx context.Context) error {
	pm, frame, err := sh.e.RenderPixmap(ctx)
	if err != nil {
		return err
	}
	sh.displayed = pm
	log.Debug().Str("selection", frame.Selection.String()).Str("domain", frame.Mapper.Domain.String()).Msg("frame displayed")
	sh.printf("%s over %s\n", frame.Selection, frame.Mapper.Domain)
	return nil
}

func (sh *shell) show() {
	g := sh.e.Grid()
	sh.printf("selection %s\ndomain    %s\ngrid      %dx%d\n", sh.e.Selection(), sh.e.Domain(), g.Width, g.Height)
}

// readDomain asks for the four bounds in turn. A bound outside
// [-MaxBound, MaxBound], or a max not above its min, is asked again.
func (sh *shell) readDomain() (texplore.Domain, error) {
	var d texplore.Domain
	var err error
	if d.XMin, err = sh.readBound("x min", math.Inf(-1)); err != nil {
		return d, err
	}
	if d.XMax, err = sh.readBound("x max", float64(d.XMin)); err != nil {
		return d, err
	}
	if d.YMin, err = sh.readBound("y min", math.Inf(-1)); err != nil {
		return d, err
	}
	if d.YMax, err = sh.readBound("y max", float64(d.YMin)); err != nil {
		return d, err
	}
	return d, nil
}

func (sh *shell) readBound(name string, above float64) (float32, error) {
	for {
		line, ok := sh.prompt(fmt.Sprintf("Enter %s: ", name))
		if !ok {
			return 0, io.EOF
		}
		v, err := strconv.ParseFloat(line, 32)
		switch {
		case err != nil || math.IsNaN(v):
			sh.printf("%q is not a number\n", line)
		case math.Abs(v) > texplore.MaxBound:
			sh.printf("%s must be within [-%g, %g]\n", name, float64(texplore.MaxBound), float64(texplore.MaxBound))
		case v <= above:
			sh.printf("%s must be greater than %g\n", name, above)
		default:
			return float32(v), nil
		}
	}
}
