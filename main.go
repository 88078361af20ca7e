package main

import "github.com/lakeshore-digital/contentsync/cmd"

func main() {
	cmd.Execute()
}
