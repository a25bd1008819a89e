package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"fjacquet/firefly-importer/cmd/importpiraeus"
	"fjacquet/firefly-importer/cmd/root"
	"fjacquet/firefly-importer/cmd/testauth"
	"fjacquet/firefly-importer/internal/config"
)

func init() {
	// .env must be loaded before viper reads the environment.
	config.LoadEnv()

	root.Cmd.AddCommand(testauth.Cmd)
	root.Cmd.AddCommand(importpiraeus.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := root.Cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
