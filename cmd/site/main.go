package main

import (
	"github.com/joho/godotenv"

	"github.com/covspace/site/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
