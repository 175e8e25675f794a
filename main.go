package main

import "github.com/twiced-technology-gmbh/tabboard/cmd"

func main() {
	cmd.Execute()
}
