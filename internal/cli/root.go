package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bookstore/internal/note"
)

const msgUnknownAction = "Action not recognized!"

// newRootCmd builds the note command. Each call returns fresh flag state.
//
// Flags are only read before the action word. Everything after it is taken
// literally, so titles and content may start with a dash.
func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "noteapp [--dir <dir>] <add|read|delete> <title> [content]",
		Short: "Plain text notes, one file per title",
		Long: `noteapp stores notes as <title>.txt files.

  noteapp add MyNote "This is my first note."
  noteapp read MyNote
  noteapp delete MyNote`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := note.NewFileStore(v.GetString("dir"))
			out := cmd.OutOrStdout()

			action, ok := actions[argAt(args, 0)]
			if !ok {
				fmt.Fprintln(out, msgUnknownAction)
				return nil
			}
			return action(out, store, args[1:])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		// Unknown leading flags fall through to the action lookup.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), msgUnknownAction)
	})

	rootCmd.Flags().SetInterspersed(false)
	rootCmd.Flags().String("dir", ".", "Directory holding note files (env NOTES_DIR)")
	_ = v.BindPFlag("dir", rootCmd.Flags().Lookup("dir"))
	_ = v.BindEnv("dir", "NOTES_DIR")

	return rootCmd
}

// Execute runs the note CLI with os.Args.
func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
