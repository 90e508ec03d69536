package main

import "github.com/dowjones/factiva-core-go/cmd/factiva/cmd"

func main() {
	cmd.Execute()
}
