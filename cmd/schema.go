package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"

	"github.com/colorcarnival/carnival/auth"
	"github.com/colorcarnival/carnival/grid"
	"github.com/colorcarnival/carnival/palette"
	"github.com/colorcarnival/carnival/pressure"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// schemaTargets maps each wire payload to the value its schema is reflected from.
var schemaTargets = map[string]any{
	"palettes":         []*palette.Palette{},
	"grid-request":     &grid.Request{},
	"grid-result":      &grid.Result{},
	"pressure-request": &pressure.Request{},
	"pressure-result":  &pressure.Result{},
	"credentials":      &auth.Credentials{},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.SetOut(os.Stdout)
}

var schemaCmd = &cobra.Command{
	Use:       "schema <payload>",
	Short:     "Print the JSON schema of a payload exchanged with the color service",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: lo.Keys(schemaTargets),
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return filepath.Base(t.PkgPath()) + "." + t.Name()
		}
		reflector.Mapper = func(t reflect.Type) *jsonschema.Schema {
			// NaN channels travel as null
			if t == reflect.TypeOf(pressure.Channel(0)) {
				return &jsonschema.Schema{
					OneOf: []*jsonschema.Schema{{Type: "number"}, {Type: "null"}},
				}
			}
			return nil
		}

		schema := reflector.Reflect(schemaTargets[args[0]])
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(schema))
	},
}
