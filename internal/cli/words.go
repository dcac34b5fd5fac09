package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newWordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word",
		Short: "Dictionary commands",
	}

	cmd.AddCommand(newWordCheckCmd())

	return cmd
}

func newWordCheckCmd() *cobra.Command {
	var letters string

	cmd := &cobra.Command{
		Use:   "check <word>",
		Short: "Check a word against the dictionary and score it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"word": args[0]}
			if letters != "" {
				req["letters"] = strings.Split(letters, ",")
			}

			var result ValidateResult
			if err := client.Post("/api/words/validate", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&letters, "letters", "", "Comma-separated letter pool to check against (e.g. c,a,t,s)")

	return cmd
}
