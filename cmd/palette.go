package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/color"
	"github.com/colorcarnival/carnival/icon"
	"github.com/colorcarnival/carnival/key"
	"github.com/colorcarnival/carnival/log"
	"github.com/colorcarnival/carnival/network"
	"github.com/colorcarnival/carnival/palette"
	"github.com/colorcarnival/carnival/style"
	"github.com/colorcarnival/carnival/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// surveyConfirm asks on the terminal. With yes set it approves without asking.
func surveyConfirm(yes bool) palette.Confirmer {
	return palette.ConfirmFunc(func(prompt string) (bool, error) {
		if yes {
			return true, nil
		}

		var response bool
		err := survey.AskOne(&survey.Confirm{Message: prompt, Default: false}, &response)
		return response, err
	})
}

func newSynchronizer(yes bool) *palette.Synchronizer {
	return palette.New(network.Default(), alert.Default(), surveyConfirm(yes))
}

// exitOnFailure ends the command when a feature failed. The reason was already shown as an alert.
func exitOnFailure(err error) {
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// resolvePalette loads the list and finds the palette named by arg, either its id or its name.
func resolvePalette(ctx context.Context, s *palette.Synchronizer, arg string) (palette.Option, error) {
	if err := s.Load(ctx, mo.None[int]()); err != nil {
		return palette.Option{}, err
	}

	options := s.Snapshot().Options
	if id, err := strconv.Atoi(arg); err == nil {
		if option, ok := lo.Find(options, func(o palette.Option) bool { return o.ID == id }); ok {
			return option, nil
		}
	}

	if found := s.FindByName(arg); len(found) > 0 {
		return found[0], nil
	}

	return palette.Option{}, fmt.Errorf("no palette matches %q", arg)
}

func init() {
	rootCmd.AddCommand(paletteCmd)
}

var paletteCmd = &cobra.Command{
	Use:     "palette",
	Aliases: []string{"palettes", "p"},
	Short:   "List, show, create and delete palettes",
}

func init() {
	paletteCmd.AddCommand(paletteListCmd)
	paletteListCmd.Flags().BoolP("json", "j", false, "Print the palettes as JSON")
	paletteListCmd.SetOut(os.Stdout)
}

var paletteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved palettes",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := requestContext()
		defer cancel()

		s := newSynchronizer(false)
		exitOnFailure(s.Load(ctx, mo.None[int]()))
		state := s.Snapshot()

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(lo.CoalesceSliceOrEmpty(state.Options)))
			return
		}

		if state.Placeholder {
			cmd.Println(style.Faint(palette.Placeholder))
			return
		}

		for _, o := range state.Options {
			cmd.Printf("%s %s\n", style.Fg(color.Yellow)(fmt.Sprintf("%4d", o.ID)), o.Name)
		}
	},
}

func init() {
	paletteCmd.AddCommand(paletteShowCmd)
	paletteShowCmd.Flags().BoolP("json", "j", false, "Print the colors as JSON")
	paletteShowCmd.SetOut(os.Stdout)
}

var paletteShowCmd = &cobra.Command{
	Use:   "show <id or name>",
	Short: "Show the colors of a palette",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := requestContext()
		defer cancel()

		s := newSynchronizer(false)
		option, err := resolvePalette(ctx, s, args[0])
		handleErr(err)
		exitOnFailure(s.Select(ctx, option.ID))

		colors := s.Snapshot().Colors
		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(lo.CoalesceSliceOrEmpty(colors)))
			return
		}

		cmd.Printf("%s %s %s\n",
			icon.Get(icon.Palette),
			style.Bold(option.Name),
			style.Faint(util.Quantify(len(colors), "color", "colors")),
		)
		if len(colors) > 0 {
			cmd.Println(palette.RenderColors(colors, viper.GetInt(key.GridCellWidth)*2))
		}
	},
}

func init() {
	paletteCmd.AddCommand(paletteCreateCmd)
}

var paletteCreateCmd = &cobra.Command{
	Use:     "create <name>",
	Aliases: []string{"new", "add"},
	Short:   "Save a new palette",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			handleErr(survey.AskOne(&survey.Input{Message: "Palette name"}, &name))
		}

		ctx, cancel := requestContext()
		defer cancel()

		saved, err := newSynchronizer(false).Create(ctx, name)
		exitOnFailure(err)
		if !saved {
			os.Exit(1)
		}
	},
}

func init() {
	paletteCmd.AddCommand(paletteDeleteCmd)
	paletteDeleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
}

var paletteDeleteCmd = &cobra.Command{
	Use:     "delete <id or name>",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a palette and its colors",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := requestContext()
		defer cancel()

		s := newSynchronizer(lo.Must(cmd.Flags().GetBool("yes")))
		option, err := resolvePalette(ctx, s, args[0])
		handleErr(err)
		exitOnFailure(s.Select(ctx, option.ID))

		err = s.Delete(ctx)
		if errors.Is(err, palette.ErrInFlight) {
			return
		}
		exitOnFailure(err)
	},
}
