package main

import (
	"agrobooks/internal/app/server"
)

func main() {
	server.Run()
}
