package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"Mileage/Cli"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime)

	if err := Cli.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
