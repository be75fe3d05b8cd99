package main

import cmd "github.com/rohmanhakim/lyrics-service/internal/cli"

func main() {
	cmd.Execute()
}
