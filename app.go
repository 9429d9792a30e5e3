package main

import "github.com/masmgr/codetime-go/cmd"

func main() {
	cmd.Run()
}
