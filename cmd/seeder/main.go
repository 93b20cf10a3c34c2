package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/userseed/internal/seeder"
	"github.com/dmitrijs2005/userseed/internal/seeder/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := seeder.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	err = app.Run(ctx)
	if cerr := app.Close(); cerr != nil {
		log.Printf("db close error: %v", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}
