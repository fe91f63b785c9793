package main

import "github.com/jsphweid/notelane/cmd"

func main() {
	cmd.Execute()
}
