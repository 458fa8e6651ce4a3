package main

import "github.com/mgarrido/harvest-export/cmd"

func main() {
	cmd.Execute()
}
