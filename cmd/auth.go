package cmd

import (
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/auth"
	"github.com/colorcarnival/carnival/icon"
	"github.com/colorcarnival/carnival/network"
	"github.com/colorcarnival/carnival/session"
	"github.com/colorcarnival/carnival/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// askCredentials fills in whatever the flags left empty.
func askCredentials(cmd *cobra.Command) (username, password string) {
	username = lo.Must(cmd.Flags().GetString("username"))
	password = lo.Must(cmd.Flags().GetString("password"))

	var questions []*survey.Question
	if username == "" {
		questions = append(questions, &survey.Question{
			Name:   "username",
			Prompt: &survey.Input{Message: "Username"},
		})
	}
	if password == "" {
		questions = append(questions, &survey.Question{
			Name:   "password",
			Prompt: &survey.Password{Message: "Password"},
		})
	}

	if len(questions) == 0 {
		return
	}

	answers := struct {
		Username string
		Password string
	}{Username: username, Password: password}
	handleErr(survey.Ask(questions, &answers))

	return answers.Username, answers.Password
}

func submitCredentials(cmd *cobra.Command, mode auth.Mode) {
	sess := session.Default()
	sess.Load()

	flow := auth.New(network.Default(), alert.Default(), sess)
	flow.SetMode(mode)

	username, password := askCredentials(cmd)

	ctx, cancel := requestContext()
	defer cancel()

	done, err := flow.Submit(ctx, username, password)
	exitOnFailure(err)
	if !done {
		os.Exit(1)
	}
}

func addCredentialFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("username", "u", "", "Account username")
	cmd.Flags().StringP("password", "P", "", "Account password, asked for when omitted")
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
	addCredentialFlags(loginCmd)
	addCredentialFlags(registerCmd)
	whoamiCmd.SetOut(os.Stdout)
}

var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"signin"},
	Short:   "Sign in to the color service",
	Run: func(cmd *cobra.Command, args []string) {
		submitCredentials(cmd, auth.Login)
	},
}

var registerCmd = &cobra.Command{
	Use:     "register",
	Aliases: []string{"signup"},
	Short:   "Create an account on the color service",
	Long:    "Create an account on the color service. Registering does not sign you in.",
	Run: func(cmd *cobra.Command, args []string) {
		submitCredentials(cmd, auth.Register)
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Aliases: []string{"signout"},
	Short:   "Forget the signed-in account",
	Run: func(cmd *cobra.Command, args []string) {
		sess := session.Default()
		sess.Load()

		exitOnFailure(auth.New(network.Default(), alert.Default(), sess).Logout())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Run: func(cmd *cobra.Command, args []string) {
		sess := session.Default()
		sess.Load()
		status := sess.Status()

		if status.SignedIn() {
			cmd.Printf("%s %s\n", icon.Get(icon.User), style.Bold(status.Text()))
			return
		}
		cmd.Println(style.Faint(status.Text()))
	},
}
