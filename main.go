package main

import "github.com/theirongolddev/mbudget/cmd"

func main() {
	cmd.Execute()
}
