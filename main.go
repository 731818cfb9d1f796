package main

import "github.com/theirongolddev/greencarbon/cmd"

func main() {
	cmd.Execute()
}
