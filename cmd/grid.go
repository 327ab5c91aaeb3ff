package cmd

import (
	"encoding/json"
	"os"

	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/grid"
	"github.com/colorcarnival/carnival/icon"
	"github.com/colorcarnival/carnival/key"
	"github.com/colorcarnival/carnival/network"
	"github.com/colorcarnival/carnival/style"
	"github.com/colorcarnival/carnival/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(gridCmd)
	gridCmd.Flags().BoolP("json", "j", false, "Print the analysis as JSON")
	gridCmd.Flags().IntP("cell-width", "w", 0, "Terminal columns per cell")
	lo.Must0(viper.BindPFlag(key.GridCellWidth, gridCmd.Flags().Lookup("cell-width")))
	gridCmd.SetOut(os.Stdout)
}

var gridCmd = &cobra.Command{
	Use:   "grid <image>",
	Short: "Sample an image into a grid of colors",
	Long: `Send an image to the color service and draw the grid of dominant colors it returns.
At most 300 cells are drawn.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := requestContext()
		defer cancel()

		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		result, err := grid.New(network.Default(), alert.Default()).Analyze(ctx, path)
		exitOnFailure(err)
		if result == nil {
			os.Exit(1)
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(result))
			return
		}

		cmd.Printf("%s %s\n\n", icon.Get(icon.Grid), style.Faint(util.FileStem(path)))
		cmd.Println(grid.Render(result.Cells, viper.GetInt(key.GridCellWidth), util.TerminalWidth(80)))
	},
}
