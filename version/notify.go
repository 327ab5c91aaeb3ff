package version

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/colorcarnival/carnival/color"
	"github.com/colorcarnival/carnival/constant"
	"github.com/colorcarnival/carnival/key"
	"github.com/colorcarnival/carnival/style"
	"github.com/spf13/viper"
)

// Notify writes a notice to w when a newer release than the running one exists.
// Lookup failures are silent.
func Notify(w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	latest, err := Latest(ctx)
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	_, _ = fmt.Fprintf(w, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(fmt.Sprintf("https://github.com/%s/releases/tag/v%s", constant.Repository, latest)),
	)
}
