package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/bookmarks/internal/buildinfo"
	"github.com/dmitrijs2005/bookmarks/internal/client/cli"
	"github.com/dmitrijs2005/bookmarks/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := cli.NewApp(cfg).Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
