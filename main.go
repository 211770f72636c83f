package main

import "github.com/vibast-solutions/ms-go-session/cmd"

func main() {
	cmd.Execute()
}
