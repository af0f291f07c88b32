package main

import "github.com/deckardlabs/baseline/cmd"

func main() {
	cmd.Execute()
}
