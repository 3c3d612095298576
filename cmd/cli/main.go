package main

import (
	"github.com/mchmarny/rubric/pkg/cli"
)

func main() {
	cli.Execute()
}
