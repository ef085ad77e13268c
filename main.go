package main

import "github.com/banton/outrender/cmd"

func main() {
	cmd.Execute()
}
