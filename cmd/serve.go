package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/colorcarnival/carnival/icon"
	"github.com/colorcarnival/carnival/internal/mockserver"
	"github.com/colorcarnival/carnival/style"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "localhost:5000", "Address to listen on")
	serveCmd.Flags().Bool("seed", false, "Start with a few sample palettes")
	serveCmd.Flags().Bool("debug", false, "Run gin in debug mode")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an in-memory color service for local use",
	Long: `Run an in-memory color service speaking the same API as the real one.
Everything is lost when it stops.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("debug")) {
			gin.SetMode(gin.ReleaseMode)
		}

		server := mockserver.New()
		if lo.Must(cmd.Flags().GetBool("seed")) {
			server.Seed()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := lo.Must(cmd.Flags().GetString("addr"))
		fmt.Printf("%s Serving on %s\n", icon.Get(icon.Success), style.Bold("http://"+addr))
		handleErr(server.Run(ctx, addr))
	},
}
