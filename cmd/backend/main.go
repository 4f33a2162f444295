package main

import (
	"log"

	"tms/internal/api"
)

func main() {
	log.Println("App start")
	api.StartServer()
	log.Println("App terminated")
}
