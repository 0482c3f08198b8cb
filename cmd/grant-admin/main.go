package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ifsc-carteirinha/carteirinha-backend/internal/config"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/database"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/logger"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/repository"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/service"
)

func main() {
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	grantRepo := repository.NewGrantRepository(pool)
	rolesService := service.NewRolesService(cfg, grantRepo, log)

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		grants, err := rolesService.List(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to list grants")
		}
		for _, g := range grants {
			marker := ""
			if g.Bootstrap {
				marker = " (bootstrap)"
			}
			fmt.Printf("%s%s\n", g.Login, marker)
		}
	case "add":
		if len(args) < 2 {
			printUsage()
			os.Exit(1)
		}
		login, err := rolesService.Add(ctx, args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to add grant")
		}
		fmt.Printf("Admin granted to %s\n", login)
	case "remove":
		if len(args) < 2 {
			printUsage()
			os.Exit(1)
		}
		if err := rolesService.Remove(ctx, args[1]); err != nil {
			log.Fatal().Err(err).Msg("Failed to remove grant")
		}
		fmt.Printf("Admin revoked from %s\n", args[1])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: grant-admin <command> [login]")
	fmt.Println("Commands: list, add <login>, remove <login>")
}
