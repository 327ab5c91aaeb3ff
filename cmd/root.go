// Package cmd implements the command-line interface for carnival.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/color"
	"github.com/colorcarnival/carnival/constant"
	"github.com/colorcarnival/carnival/icon"
	"github.com/colorcarnival/carnival/key"
	"github.com/colorcarnival/carnival/log"
	"github.com/colorcarnival/carnival/network"
	"github.com/colorcarnival/carnival/route"
	"github.com/colorcarnival/carnival/style"
	"github.com/colorcarnival/carnival/tui"
	"github.com/colorcarnival/carnival/util"
	"github.com/colorcarnival/carnival/version"
	"github.com/colorcarnival/carnival/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// the interactive mode renders alerts itself
		if cmd != rootCmd {
			alert.Default().Subscribe(alert.Printer(os.Stderr))
		}
	}

	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., emoji, plain, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("api", "A", "", "Root URL of the color service")
	lo.Must0(viper.BindPFlag(key.APIBaseURL, rootCmd.PersistentFlags().Lookup("api")))

	rootCmd.Flags().StringP("page", "p", "", "Page to open: palette, grid or pressure")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("page", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(route.Pages(), func(p route.Page, _ int) string { return p.String() }), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.TUIPage, rootCmd.Flags().Lookup("page")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(os.Stdout)
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the carnival application.
var rootCmd = &cobra.Command{
	Use:   constant.Carnival,
	Short: "Palettes, image grids and color pressure from your terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiPurple).Render("    - Palettes, image grids and color pressure from your terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		ctx, cancel := network.RequestContext(context.Background())
		CheckService(ctx)
		cancel()

		options := tui.Options{
			Page: route.Detect(viper.GetString(key.TUIPage)),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiMagenta + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

// requestContext bounds a command's calls to the color service by api.timeout.
func requestContext() (context.Context, context.CancelFunc) {
	return network.RequestContext(context.Background())
}
