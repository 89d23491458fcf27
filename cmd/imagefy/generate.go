package main

import (
	"fmt"
	"strings"

	"imagefy/internal/submission"

	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "generate <prompt>...",
		Short: "Generate one image and print its URL",
		Long:  "Submit a prompt as the signed-in user and print the resulting image URL. Words are joined with spaces.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := opts.open(ctx, true)
			if err != nil {
				return err
			}
			defer e.close()

			stderr := cmd.ErrOrStderr()
			notifier := submission.NotifierFunc(func(n submission.Notification) {
				fmt.Fprintln(stderr, n.Text)
			})
			wf := submission.New(e.generator(), e.session, notifier, e.workflowOptions()...)
			out := wf.Submit(ctx, strings.Join(args, " "))
			if out.Err != nil {
				if submission.UserMessage(out.Err) != "" {
					return errReported
				}
				return out.Err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.ImageURL)

			if save {
				path, err := e.downloads().Save(ctx, out.ImageURL)
				if err != nil {
					return fmt.Errorf("download: %w", err)
				}
				fmt.Fprintf(stderr, "Saved %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&save, "download", "d", false, "save the image to the downloads directory")
	return cmd
}
