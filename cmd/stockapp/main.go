package main

import (
	"os"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/cmd/stockapp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
