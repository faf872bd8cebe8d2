package main

import "github.com/wippyai/bebytes/cmd/bebytesgen/cmd"

func main() {
	cmd.Execute()
}
