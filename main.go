package main

import "github.com/tristendillon/promify/cmd"

func main() {
	cmd.Execute()
}
