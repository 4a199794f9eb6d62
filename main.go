package main

import (
	"fmt"

	"storekit/commerce-api/api"
	"storekit/commerce-api/config"
	"storekit/commerce-api/db"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Setup()
	if err != nil {
		panic(err)
	}

	if cfg.MigrateOnly {
		if _, err := db.New(cfg); err != nil {
			panic(err)
		}

		fmt.Println("Migrations complete")
		return
	}

	a, err := api.NewRouter(cfg)
	if err != nil {
		panic(err)
	}

	zap.L().Info("Server starting", zap.Int("port", cfg.Port))

	err = a.Router.Run(fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		panic(err)
	}
}
