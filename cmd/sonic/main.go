package main

import "github.com/codgamerofficial/sonicstream/internal/cli"

func main() {
	cli.Execute()
}
