// Package main is the entry point for the qaboard API server.
package main

import "qaboard/src/app/cli"

func main() {
	cli.Execute()
}
