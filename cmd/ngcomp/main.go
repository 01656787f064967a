package main

import "github.com/mvp-joe/ngcomp/internal/cli"

func main() {
	cli.Execute()
}
