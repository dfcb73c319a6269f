package main

import "jobshell/cmd"

func main() {
	cmd.Execute()
}
