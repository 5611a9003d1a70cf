package main

import "github.com/nsxzhou1114/realworld-api/cmd"

func main() {
	cmd.Execute()
}
