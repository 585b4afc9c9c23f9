// main package for realias command-line tool
// Package main is the entry point for the realias CLI.
package main

import "realias.dev/pkg/realias/cmd"

func main() {
	cmd.Execute()
}
