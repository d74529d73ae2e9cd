/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/Abyteon/vhr-parser/cmd/vhr/cmd"
)

func main() {
	cmd.Execute()
}
