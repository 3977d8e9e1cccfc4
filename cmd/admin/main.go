// Command admin manages credential store rows from the command line:
//
//	admin add-user -username ann -password secret -role editor
//	admin delete-user -username ann
//
// Deleting a user does not invalidate tokens already issued for it; token
// validity is purely time-bounded.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/intake-service/internal/auth"
	"github.com/spec-kit/intake-service/internal/config"
	"github.com/spec-kit/intake-service/internal/domain"
	"github.com/spec-kit/intake-service/internal/observability"
	"github.com/spec-kit/intake-service/internal/persistence"
	"github.com/spec-kit/intake-service/internal/repository"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	users := repository.NewUserRepository(pg.PoolHandle())

	switch os.Args[1] {
	case "add-user":
		err = addUser(ctx, users, cfg.Auth.HashKey, os.Args[2:])
	case "delete-user":
		err = deleteUser(ctx, users, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal("command failed", zap.String("command", os.Args[1]), zap.Error(err))
	}
}

func addUser(ctx context.Context, users repository.UserRepository, hashKey string, args []string) error {
	fs := flag.NewFlagSet("add-user", flag.ExitOnError)
	username := fs.String("username", "", "username (required)")
	password := fs.String("password", "", "password (required)")
	role := fs.String("role", "", "role label")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("username and password are required")
	}

	user := &domain.User{
		Username:     *username,
		PasswordHash: auth.HashPassword(*password, hashKey),
		Role:         *role,
	}
	if err := users.Create(ctx, user); err != nil {
		return err
	}
	fmt.Printf("added user %s\n", user.Username)
	return nil
}

func deleteUser(ctx context.Context, users repository.UserRepository, args []string) error {
	fs := flag.NewFlagSet("delete-user", flag.ExitOnError)
	username := fs.String("username", "", "username (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return fmt.Errorf("username is required")
	}

	removed, err := users.Delete(ctx, *username)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("no user named %s\n", *username)
		return nil
	}
	fmt.Printf("deleted user %s\n", *username)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin <add-user|delete-user> [flags]")
}
