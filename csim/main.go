package main

import "github.com/sarchlab/csim/csim/cmd"

func main() {
	cmd.Execute()
}
