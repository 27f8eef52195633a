package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/cryptograms/internal/observability"
	"github.com/xkilldash9x/cryptograms/internal/service"
)

// newAnswerCmd creates and configures the `answer` command.
func newAnswerCmd() *cobra.Command {
	var token string

	answerCmd := &cobra.Command{
		Use:   "answer",
		Short: "Reveal the plaintext and key behind a saved puzzle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}

			components, err := service.NewComponents(ctx, cfg, observability.GetLogger())
			if err != nil {
				return err
			}
			defer components.Shutdown()

			rec, err := components.Puzzles.Reveal(ctx, token)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Type: %s\n", rec.Type)
			fmt.Fprintf(out, "Plaintext: %s\n", rec.Plaintext)
			if rec.Key != nil {
				fmt.Fprintf(out, "Key: %s\n", *rec.Key)
			}
			if rec.Author != nil {
				fmt.Fprintf(out, "Author: %s\n", *rec.Author)
			}
			return nil
		},
	}

	answerCmd.Flags().StringVar(&token, "token", "", "token printed by encrypt --save or the API")
	_ = answerCmd.MarkFlagRequired("token")
	return answerCmd
}
