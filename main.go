package main

import "github.com/caenv/caenv/cmd/caenv"

func main() { caenv.Execute() }
