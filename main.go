package main

import "docpipe/cmd"

func main() {
	cmd.Execute()
}
