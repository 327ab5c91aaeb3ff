package cmd

import (
	"encoding/json"
	"os"

	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/icon"
	"github.com/colorcarnival/carnival/network"
	"github.com/colorcarnival/carnival/pressure"
	"github.com/colorcarnival/carnival/style"
	"github.com/colorcarnival/carnival/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pressureCmd)
	pressureCmd.Flags().BoolP("json", "j", false, "Print the result as JSON")
	pressureCmd.SetOut(os.Stdout)
}

var pressureCmd = &cobra.Command{
	Use:   "pressure <target hex> <actual hex>",
	Short: "Measure how far a color drifts from its target",
	Example: `  carnival pressure "#ff0000" "#cc3333"
  carnival pressure ff0000 cc3333 --json`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := requestContext()
		defer cancel()

		result, err := pressure.New(network.Default(), alert.Default()).Compute(ctx, args[0], args[1])
		exitOnFailure(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(result))
			return
		}

		cmd.Printf("%s %s %s\n", icon.Get(icon.Pressure), style.Faint("Saturation difference"), style.Bold(result.SaturationText()))
		cmd.Printf("%s %s %s\n", icon.Get(icon.Pressure), style.Faint("Pressure"), style.Bold(result.PressureText()))
		cmd.Println(pressure.Bar(*result, util.Min(util.TerminalWidth(60), 60)))
	},
}
