package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/C0deSamurai/verdant-ecstasy/internal/api/response"
)

func newWordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word",
		Short: "Dictionary lookups",
	}

	cmd.AddCommand(newWordCheckCmd())
	cmd.AddCommand(newWordAnagramCmd())
	cmd.AddCommand(newWordPatternCmd())
	cmd.AddCommand(newWordHooksCmd())

	return cmd
}

func newWordCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <word>",
		Short: "Check whether a word is in the dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.WordCheck
			if err := client.Get(cmd.Context(), "/api/v1/words/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newWordAnagramCmd() *cobra.Command {
	var sub bool

	cmd := &cobra.Command{
		Use:   "anagram <letters>",
		Short: "Find words using exactly these letters, '?' for a blank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{"letters": {args[0]}}
			if sub {
				q.Set("sub", "true")
			}

			var result response.WordList
			if err := client.Get(cmd.Context(), "/api/v1/anagrams?"+q.Encode(), &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&sub, "sub", false, "Also list words using only some of the letters")
	return cmd
}

func newWordPatternCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pattern <pattern>",
		Short: "Find words matching a pattern: '?' is one letter, '*' any run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{"q": {args[0]}}

			var result response.WordList
			if err := client.Get(cmd.Context(), "/api/v1/patterns?"+q.Encode(), &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newWordHooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hooks <word>",
		Short: "List the letters that extend a word at either end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Hooks
			if err := client.Get(cmd.Context(), "/api/v1/hooks/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}
