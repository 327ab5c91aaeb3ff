package network

import (
	"context"
	"time"

	"github.com/colorcarnival/carnival/key"
	"github.com/spf13/viper"
)

// RequestContext derives a context bounded by api.timeout seconds. A timeout of 0 never expires.
func RequestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if seconds := viper.GetInt(key.APITimeout); seconds > 0 {
		return context.WithTimeout(parent, time.Duration(seconds)*time.Second)
	}
	return context.WithCancel(parent)
}
