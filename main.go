package main

import "github.com/notargets/feorient/cmd"

func main() {
	cmd.Execute()
}
