package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/texplore"
)

func newRenderCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render one texture to an image file",
		Example: `  texplore render --texture 3 -o three.png
  texplore render --red 1 --green off --blue 7 --domain.x_min -5 --domain.x_max 5 -o out.tiff
  texplore render --random --seed 42 --scale 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.newExplorer()
			if err != nil {
				return err
			}
			defer e.Close()

			pm, frame, err := e.RenderPixmap(cmd.Context())
			if err != nil {
				return err
			}
			if err := e.Save(pm, a.conf.Output, texplore.ExportOptions{Scale: a.conf.Scale}); err != nil {
				return err
			}
			log.Info().Str("path", a.conf.Output).Str("selection", frame.Selection.String()).Msg("texture saved")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s over %s)\n",
				a.conf.Output, frame.Selection, frame.Mapper.Domain)
			return err
		},
	}
}
