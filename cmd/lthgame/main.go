package main

import "github.com/LeonIngman/LTH-Game-sub001/internal/adapters/cli"

func main() {
	cli.Execute()
}
