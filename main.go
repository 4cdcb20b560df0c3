package main

import "github.com/Alturino/shopping/cmd"

func main() {
	cmd.Start()
}
