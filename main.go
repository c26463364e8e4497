package main

import "github.com/KaramelBytes/fieldteam-cli/cmd"

func main() {
	cmd.Execute()
}
