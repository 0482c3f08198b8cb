package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/ifsc-carteirinha/carteirinha-backend/internal/config"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/database"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/logger"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
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

	accountRepo := repository.NewAccountRepository(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Local Login Account ===")

	// Name
	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		fmt.Println("Error: a valid email is required")
		return
	}
	if !strings.HasSuffix(email, cfg.StudentDomain) && !strings.HasSuffix(email, cfg.EmployeeDomain) {
		fmt.Printf("Warning: %s is outside the institutional domains; logins will be rejected\n", email)
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	account := &model.Account{
		Email:        email,
		Nome:         name,
		PasswordHash: string(hashedPassword),
	}

	if err := accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			fmt.Printf("Error: an account for %s already exists\n", email)
			return
		}
		log.Fatal().Err(err).Msg("Failed to create account")
	}

	fmt.Printf("\nSuccess! Account '%s' (%s) created\n", account.Nome, account.Email)
}
