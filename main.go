package main

import "github.com/Digni/xidle/cmd"

func main() {
	cmd.Execute()
}
