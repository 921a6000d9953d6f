package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/vacmar/portfolio/cmd"
)

func main() {
	cmd.Execute()
}
