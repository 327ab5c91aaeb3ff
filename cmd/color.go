package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(colorCmd)
	colorCmd.AddCommand(colorDeleteCmd)
}

var colorCmd = &cobra.Command{
	Use:   "color",
	Short: "Manage the colors of a palette",
}

var colorDeleteCmd = &cobra.Command{
	Use:     "delete <palette id or name> <color id>",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete one color from a palette",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		colorID, err := strconv.Atoi(args[1])
		handleErr(err)

		ctx, cancel := requestContext()
		defer cancel()

		s := newSynchronizer(false)
		option, err := resolvePalette(ctx, s, args[0])
		handleErr(err)

		exitOnFailure(s.DeleteColor(ctx, option.ID, colorID))
	},
}
