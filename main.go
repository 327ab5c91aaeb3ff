// Package main is the entry point for carnival.
package main

import (
	"github.com/colorcarnival/carnival/cmd"
	"github.com/colorcarnival/carnival/config"
	"github.com/colorcarnival/carnival/internal/cache"
	"github.com/colorcarnival/carnival/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
