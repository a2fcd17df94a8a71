package main

import "github/chapool/stormint/cmd"

func main() {
	cmd.Execute()
}
