package main

import "github.com/vibewolf/vibewolf/cmd/vibewolf"

func main() { vibewolf.Execute() }
