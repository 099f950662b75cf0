package main

import "github.com/hyunseok-yang/kbo-boxscores/internal/cli"

func main() {
	cli.Execute()
}
