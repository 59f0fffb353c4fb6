package main

import (
	"os"

	_ "time/tzdata"

	"github.com/stevedao0/contract-service/internal/cli"
	"github.com/stevedao0/contract-service/internal/config"
	"github.com/stevedao0/contract-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	if err := cli.NewRootCommand().Execute(); err != nil {
		utils.Logger.WithError(err).Error("contract-service exited with error")
		os.Exit(1)
	}
}
