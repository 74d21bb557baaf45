/*
Copyright © 2026 Graydelve Authors
*/
package main

import "github.com/graydelve/graydelve/cmd"

func main() {
	cmd.Execute()
}
