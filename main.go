package main

import "sheetprep/cmd"

func main() {
	cmd.Execute()
}
