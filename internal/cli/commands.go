package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localnerve/lessonsync/internal/syncer"
)

func newHealthCmd(client func() *syncer.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !client().CheckHealth(cmd.Context()) {
				return fmt.Errorf("server unreachable")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

// newPassCmd runs one sync pass and prints its report. The command fails
// when any entity failed.
func newPassCmd(use, short string, open func() (*session, error), pass func(*syncer.Engine, context.Context) *syncer.Report) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			rep := pass(s.engine, cmd.Context())
			if err := printJSON(cmd.OutOrStdout(), rep); err != nil {
				return err
			}
			if failed := rep.Failed(); len(failed) > 0 {
				return fmt.Errorf("%d of %d entities failed", len(failed), len(rep.Results))
			}
			return nil
		},
	}
}

func newGetCmd(open func() (*session, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one value from the local cache",
		Long: `Print one value from the local cache, e.g. savedTests, materialsPhotos,
selectedTexts, homepageContent, whiteboardDrawing, theme,
backgroundAnimation or progressData.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.close()

			v, ok := s.local.Cache.Get(args[0])
			if !ok {
				return fmt.Errorf("%s: not in the local cache", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}
