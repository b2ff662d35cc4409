package main

import "github.com/inovacc/rsvpr/cmd"

func main() {
	cmd.Execute()
}
