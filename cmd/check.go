package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/colorcarnival/carnival/constant"
	"github.com/colorcarnival/carnival/icon"
	"github.com/colorcarnival/carnival/key"
	"github.com/colorcarnival/carnival/network"
	"github.com/colorcarnival/carnival/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the color service answers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := requestContext()
		defer cancel()

		CheckService(ctx)
		fmt.Printf("%s %s is reachable\n", icon.Get(icon.Success), viper.GetString(key.APIBaseURL))
	},
}

// CheckService exits with a hint when the color service cannot be reached.
// Any HTTP answer counts as reachable.
func CheckService(ctx context.Context) {
	_, err := network.Default().Call(ctx, http.MethodGet, "/api/palettes", nil)
	if err != nil {
		printUnreachableError(viper.GetString(key.APIBaseURL), err)
		os.Exit(1)
	}
}

func printUnreachableError(base string, err error) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Color service unreachable", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("Could not reach %s\n%s", base, style.Faint(err.Error())))

	command := func(s string) string {
		return style.New().Foreground(style.AccentColor).Bold(true).Render(s)
	}
	suggestion := fmt.Sprintf(
		"\n\nPoint the client at your service:\n  %s\n\nor start a local one:\n  %s",
		command(constant.Carnival+" config set "+key.APIBaseURL+" http://host:port"),
		command(constant.Carnival+" serve"),
	)

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
