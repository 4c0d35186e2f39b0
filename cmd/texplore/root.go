package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/gogpu/texplore"
	"github.com/gogpu/texplore/internal/config"
	"github.com/gogpu/texplore/internal/logging"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	configFile string
	conf       config.Config
	closeLog   func()
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "texplore",
		Short:         "Procedural texture explorer",
		Long:          "texplore maps every pixel of a grid to a point of the plane and colours it with one formula per channel.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.closeLog != nil {
				a.closeLog()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "path to a YAML, TOML or JSON config file")
	config.DefineFlags(root)

	root.AddCommand(
		newRenderCommand(a),
		newShellCommand(a),
		newServeCommand(a),
		newMenuCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	conf, err := config.Load(cmd, a.configFile)
	if err != nil {
		return err
	}
	a.conf = conf

	logger, closeLog, err := logging.Setup(conf.Log)
	if err != nil {
		return err
	}
	a.closeLog = closeLog
	texplore.SetLogger(logger)

	if os.Getenv("GOMAXPROCS") == "" {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			log.Debug().Msg(fmt.Sprintf(format, args...))
		}))
	}
	log.Debug().Str("runtime", runtime.Version()).Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Str("grid", fmt.Sprintf("%dx%d", conf.Width, conf.Height)).Msg("configuration loaded")
	return nil
}

// newExplorer builds an explorer from the loaded configuration.
func (a *app) newExplorer() (*texplore.Explorer, error) {
	opts, err := a.conf.Options()
	if err != nil {
		return nil, err
	}
	e, err := texplore.New(opts...)
	if err != nil {
		return nil, err
	}
	if a.conf.Random {
		e.Randomize()
	}
	return e, nil
}
