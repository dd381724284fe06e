package main

import "github.com/naka-gawa/github-panel/cmd"

func main() {
	cmd.Execute()
}
