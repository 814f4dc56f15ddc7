package main

import "github.com/notargets/gomms/cmd"

func main() {
	cmd.Execute()
}
