package main

import "corpkit/cmd/corpctl/cmd"

func main() {
	cmd.Execute()
}
