package main

import "moment-server/cmd"

func main() {
	cmd.Execute()
}
