package main

import "midtrans-go/internal/cli"

func main() {
	cli.Execute()
}
