package main

import "github.com/fakeyudi/ticker/cmd"

func main() {
	cmd.Execute()
}
