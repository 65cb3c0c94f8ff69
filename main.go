package main

import "github.com/alessio26gas/eulerfv/cmd"

func main() {
	cmd.Execute()
}
