package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"armario-outfits/canvas"
	"armario-outfits/config"
)

func newLayoutCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the effective canvas layout as TOML",
		Long: `Prints the canvas bounds and clamp constants the server would use.

The output is a valid layout file for CANVAS_LAYOUT_FILE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var layout canvas.Layout
			if file != "" {
				loaded, err := config.LoadLayout(file)
				if err != nil {
					return err
				}
				layout = loaded
			} else {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				layout = cfg.Layout
			}

			out, err := config.MarshalLayout(layout)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Layout file to read instead of CANVAS_LAYOUT_FILE")

	return cmd
}
