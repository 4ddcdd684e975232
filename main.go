package main

import (
	"github.com/LifeDrop/donor_service/config"
	"github.com/LifeDrop/donor_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
