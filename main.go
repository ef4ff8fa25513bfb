package main

import (
	"dinebook/config"
	"dinebook/models"
	"dinebook/routes"
	"dinebook/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	config.Load()
	config.ConnectDatabase()
	db := config.DB

	if err := models.AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	if config.C.SeedDemo {
		utils.SeedDemoRestaurants()
	}

	r := routes.SetupRouter(db, config.C.TemplatesGlob)
	addr := ":" + config.C.Port
	logrus.Infof("server running on %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
