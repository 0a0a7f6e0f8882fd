package main

import (
	"log"

	"go.uber.org/zap"

	fabi "github.com/app-sre/fabi/pkg"
	"github.com/app-sre/fabi/pkg/cmd"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4/stdlib"
)

func main() {
	build := zap.NewDevelopment
	if fabi.Production() {
		build = zap.NewProduction
	}

	l, err := build()
	if err != nil {
		log.Fatalf("Unable to initialize Zap logger: %s", err)
	}
	defer func() { _ = l.Sync() }()

	logger := l.Sugar()
	if err := cmd.Run(logger); err != nil {
		logger.Fatalf("Unable to start FABI: %s", err)
	}
}
