//go:build cli
// +build cli

package main

import (
	"meezy.GO/cmd"
	"meezy.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
