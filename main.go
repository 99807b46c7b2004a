package main

import "netrule-mapper/cmd"

func main() {
	cmd.Execute()
}
