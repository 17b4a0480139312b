package main

import "github.com/crillab/gophercp/cmd"

func main() {
	cmd.Execute()
}
