package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/texplore"
)

func newMenuCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Print the texture menu and shell key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.newExplorer()
			if err != nil {
				return err
			}
			defer e.Close()
			return printMenu(cmd.OutOrStdout(), e.Menu())
		},
	}
}

func printMenu(w io.Writer, sections []texplore.MenuSection) error {
	var b strings.Builder
	for _, sec := range sections {
		indent := "  "
		if sec.Title != "" {
			fmt.Fprintf(&b, "%s\n", sec.Title)
			indent = "    "
		}
		for _, entry := range sec.Entries {
			fmt.Fprintf(&b, "%s%-20s %s\n", indent, entry.Label, shellSyntax(entry.Command))
		}
	}
	b.WriteString("\nKeys: q, Q or Esc quit, s save, r random texture, c change coordinates\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// shellSyntax returns the shell input that issues cmd.
func shellSyntax(cmd texplore.Command) string {
	switch cmd.Kind {
	case texplore.CommandDomain:
		return "c"
	case texplore.CommandRandom:
		return "r"
	case texplore.CommandSave:
		return "s"
	case texplore.CommandQuit:
		return "q"
	}
	return cmd.String()
}
