package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/docuforge/docforms/pkg/autofill"
	"github.com/docuforge/docforms/pkg/form"
	"github.com/docuforge/docforms/pkg/preview"
	"github.com/docuforge/docforms/pkg/renderers/tui"
)

func newFillCmd() *cobra.Command {
	var src sourceFlags
	var withMockAutofill bool

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a document form interactively and print the payload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			docType, list, err := src.load(ctx)
			if err != nil {
				return err
			}

			options := []form.Option{}
			if withMockAutofill {
				options = append(options, form.WithGenerator(autofill.MockGenerator{Delay: 300 * time.Millisecond}))
			}
			sess, err := form.New(docType, list, options...)
			if err != nil {
				return err
			}

			sub, err := tui.NewRunner().Run(ctx, sess)
			if errors.Is(err, tui.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), preview.Text(preview.Project(docType, list, sub.Values)))

			payload, err := json.MarshalIndent(sub.Payload(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&withMockAutofill, "mock-autofill", false, "wire the canned auto-fill generator (demo only)")
	return cmd
}
