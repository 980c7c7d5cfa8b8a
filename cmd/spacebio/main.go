package main

import "github.com/robinrobin1706/space-biology/internal/cli"

func main() {
	cli.Execute()
}
