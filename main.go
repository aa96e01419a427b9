package main

import "github.com/Tiliavir/clockrep/cmd"

func main() {
	cmd.Execute()
}
