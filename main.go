package main

import "gpuwatch/cmd"

func main() {
	cmd.Execute()
}
