package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shikkhaloy/school-backend/internal/config"
	"github.com/shikkhaloy/school-backend/internal/database"
	"github.com/shikkhaloy/school-backend/internal/logger"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/repository"
	"github.com/shikkhaloy/school-backend/internal/service"
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
	userRepo := repository.NewUserRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	roleService := service.NewRoleService(userRepo, classRepo, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Promote User to Admin ===")

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// The user must have logged in at least once so a record exists.
	user, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("User not found")
	}

	if user.Role == model.RoleAdmin {
		fmt.Printf("User '%s' (%s) is already an admin\n", user.Name, user.Email)
		return
	}

	// Confirm
	fmt.Printf("Promote '%s' (%s, current role: %s) to admin? [y/N]: ", user.Name, user.Email, user.Role)
	answer, _ := reader.ReadString('\n')
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Println("Aborted")
		return
	}

	if _, err := roleService.AssignRole(ctx, email, &model.AssignRoleRequest{Role: model.RoleAdmin}); err != nil {
		log.Fatal().Err(err).Msg("Failed to promote user")
	}

	fmt.Printf("\nSuccess! '%s' (%s) is now an admin\n", user.Name, user.Email)
}
