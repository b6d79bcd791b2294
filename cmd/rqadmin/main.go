package main

import "github.com/mcoot/rockquest-admin/internal/cli"

func main() {
	cli.Execute()
}
