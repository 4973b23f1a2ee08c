package main

import "github.com/notargets/hypersolver/cmd"

func main() {
	cmd.Execute()
}
