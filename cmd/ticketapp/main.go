package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/ticketapp/internal/client/app"
	"github.com/dmitrijs2005/ticketapp/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	a, err := app.NewApp(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
