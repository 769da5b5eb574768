package main

import "github.com/notargets/pgkyl/cmd"

func main() {
	cmd.Execute()
}
