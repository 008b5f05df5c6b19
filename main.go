package main

import "github.com/quocvuong92/remote-hub/cmd"

func main() {
	cmd.Execute()
}
