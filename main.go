package main

import "github.com/marianogappa/carioca-backend/cmd"

func main() {
	cmd.Execute()
}
