package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docuforge/docforms/pkg/render"
	"github.com/docuforge/docforms/pkg/renderers/html"
)

func newRenderCmd() *cobra.Command {
	var src sourceFlags
	var output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a descriptor list as an HTML form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			docType, list, err := src.load(ctx)
			if err != nil {
				return err
			}

			renderer, err := html.New()
			if err != nil {
				return err
			}
			markup, err := renderer.Render(ctx, render.NewForm(docType, list), render.RenderOptions{})
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, markup, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", output)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(markup))
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
