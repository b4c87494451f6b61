package main

import "titleblock/cmd/titleblock-cli/cmd"

func main() {
	cmd.Execute()
}
