package main

import "github.com/moelabs/instalytics/cmd"

func main() {
	cmd.Execute()
}
