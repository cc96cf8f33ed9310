package main

import "github.com/mpapenbr/handicap-calculator-go/cmd"

func main() {
	cmd.Execute()
}
