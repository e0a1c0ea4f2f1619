package main

import "envstack/cmd"

func main() {
	cmd.Execute()
}
