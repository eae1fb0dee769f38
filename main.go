package main

import (
	"github.com/rahe01/StayVista/startup"
	"github.com/rahe01/StayVista/startup/config"
)

func main() {
	cfg := config.NewConfig()
	server := startup.NewServer(cfg)
	server.Start()

}
