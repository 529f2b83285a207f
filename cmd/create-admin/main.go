package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/cpc-orbit/orbit-backend/internal/config"
	"github.com/cpc-orbit/orbit-backend/internal/database"
	"github.com/cpc-orbit/orbit-backend/internal/logger"
	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/repository"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"golang.org/x/term"
)

func main() {
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

	// ─── Initialize Service ────────────────────────────────────────────
	// Registration never touches the token store, so no Redis is needed here.
	authService := service.NewAuthService(cfg, repository.NewUserRepository(pool), nil, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		return
	}
	password := string(bytePassword)
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}
	if len(password) > service.MaxPasswordBytes {
		fmt.Printf("Error: Password must be at most %d bytes\n", service.MaxPasswordBytes)
		return
	}

	user, err := authService.Register(ctx, model.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     model.RoleAdmin,
	})
	if err != nil {
		if service.KindOf(err) != 0 {
			fmt.Printf("Error: %v\n", err)
			return
		}
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %s\n", user.Name, user.Email, user.ID)
}
