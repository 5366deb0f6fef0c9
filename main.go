package main

import "dtl-import/cmd"

func main() {
	cmd.Execute()
}
