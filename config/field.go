package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/colorcarnival/carnival/color"
	"github.com/colorcarnival/carnival/constant"
	"github.com/colorcarnival/carnival/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is one registered setting with its default value.
// The type of Value is the type the setting is parsed to.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env returns the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Carnival + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Parse converts command line words to the type of the default value.
// Only list fields take more than one word.
func (f *Field) Parse(words []string) (any, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: no value given", f.Key)
	}

	switch f.Value.(type) {
	case string:
		return words[0], nil
	case int:
		n, err := strconv.Atoi(words[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", f.Key, words[0])
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(words[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a boolean", f.Key, words[0])
		}
		return b, nil
	case []string:
		return words, nil
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", f.Key, f.Value)
	}
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// MarshalJSON reports the current value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Env         string `json:"env"`
		Type        string `json:"type"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
	}{
		Key:         f.Key,
		Env:         f.Env(),
		Type:        f.typeName(),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
	})
}

// Pretty renders the field for config info.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(fieldTemplate.Execute(&b, f))
	return b.String()
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		return style.Fg(lo.Ternary(value, color.Green, color.Red))(strconv.FormatBool(value))
	case string:
		return style.Fg(color.Yellow)(strconv.Quote(value))
	default:
		return fmt.Sprint(value)
	}
}

var fieldTemplate = template.Must(template.New("field").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"key":     style.Fg(color.Purple),
	"label":   style.Fg(color.Blue),
	"hl":      highlight,
	"current": viper.Get,
	"kind":    func(f *Field) string { return f.typeName() },
}).Parse(`{{ key .Key }} {{ faint (kind .) }}
{{ faint .Description }}
  {{ label "value  " }} {{ hl (current .Key) }}
  {{ label "default" }} {{ hl .Value }}
  {{ label "env    " }} {{ .Env }}`))
