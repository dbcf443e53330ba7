package main

import "companydir/cmd"

func main() {
	cmd.Execute()
}
