package main

import "github.com/ngld/bazel2cmake/cmd"

func main() {
	cmd.Execute()
}
