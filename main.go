/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/mikyjpeg/asynchis/cmd"

func main() {
	cmd.Execute()
}
