package main

import "github.com/docsgate/docsgate/cmd/docsgate/cmd"

func main() {
	cmd.Execute()
}
