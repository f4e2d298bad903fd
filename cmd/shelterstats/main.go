package main

import "github.com/dbsmedya/shelterstats/cmd/shelterstats/cmd"

func main() {
	cmd.Execute()
}
