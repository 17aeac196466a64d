package main

import "github.com/theirongolddev/dirnum/cmd"

func main() {
	cmd.Execute()
}
