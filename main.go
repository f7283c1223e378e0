/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/imobi/client/cmd"

func main() {
	cmd.Execute()
}
