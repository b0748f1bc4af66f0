package main

import "wordtrainer/internal/cli"

func main() {
	cli.Execute()
}
