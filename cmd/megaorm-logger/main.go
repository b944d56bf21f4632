package main

import "github.com/megaorm/megaorm-logger/internal/cmd"

func main() {
	cmd.Execute()
}
