// Command adduser creates an account directly in the database. It is how the
// first ADMIN gets into a fresh deployment.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fxledger/backend/internal/authz"
	"github.com/fxledger/backend/internal/config"
	"github.com/fxledger/backend/internal/database"
	"github.com/fxledger/backend/internal/models"
	"github.com/fxledger/backend/internal/services"
	"golang.org/x/term"
)

func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "account email")
	phone := flag.String("phone", "", "phone number")
	roleList := flag.String("roles", "ADMIN", "comma separated roles (USER, ADMIN)")
	flag.Parse()

	if err := run(*name, *email, *phone, *roleList); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func run(name, email, phone, roleList string) error {
	if name == "" || email == "" || phone == "" {
		flag.Usage()
		return errors.New("-name, -email and -phone are required")
	}

	roles, err := parseRoles(roleList)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	password, err := readPassword()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, dialect, err := database.Open(ctx, database.GetConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	auth := services.NewAuthService(db, dialect, nil, cfg)
	account, err := auth.CreateAccount(ctx, services.NewAccount{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: password,
		Roles:    roles,
	})
	if err != nil {
		return err
	}

	color.Green("created account %s", account.ID)
	fmt.Printf("  email: %s\n  roles: %s\n", account.Email, color.CyanString(rolesString(account.Roles)))
	return nil
}

func parseRoles(list string) (models.Roles, error) {
	roles := models.Roles{}
	for _, part := range strings.Split(list, ",") {
		role := authz.Role(strings.ToUpper(strings.TrimSpace(part)))
		if role == "" {
			continue
		}
		if !role.Valid() {
			return nil, fmt.Errorf("unknown role %q", part)
		}
		if !roles.Has(role) {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		return nil, errors.New("at least one role is required")
	}
	return roles, nil
}

func rolesString(roles models.Roles) string {
	parts := make([]string, 0, len(roles))
	for _, r := range roles {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ",")
}

// readPassword prompts twice on a terminal, or reads one line from a pipe.
func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return checkPassword(strings.TrimRight(line, "\r\n"))
	}

	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return checkPassword(string(first))
}

func checkPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", errors.New("password must be at least 6 characters")
	}
	return password, nil
}
