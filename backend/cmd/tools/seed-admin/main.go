package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/padel-tracker/padel/backend/internal/service"
	"github.com/padel-tracker/padel/backend/internal/storage/pg"
	"github.com/padel-tracker/padel/shared/config"
	"github.com/padel-tracker/padel/shared/domain"
	"github.com/padel-tracker/padel/shared/jwt"
	shared_pg "github.com/padel-tracker/padel/shared/storage/pg"
)

// seed-admin creates an admin account, or promotes the account if the email is taken.
func main() {
	var configFolder, email, password, name string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.StringVar(&email, "email", "", "admin email (required)")
	flag.StringVar(&password, "password", "", "admin password, ignored when the user exists")
	flag.StringVar(&name, "name", "Admin", "display name")
	flag.Parse()

	if email == "" {
		fatal("-email is required")
	}

	cfg := config.MustLoad(configFolder)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := shared_pg.Connect(ctx, shared_pg.DSN(cfg.Private.Pg), shared_pg.LightweightConnectionConfig())
	if err != nil {
		fatal("failed to connect to database: %v", err)
	}
	storage := pg.NewFromDB(db)
	defer storage.Cleanup()

	auth := service.NewAuth(storage, jwt.New(cfg.JwtKey(), cfg.JwtTTL()))
	user, promoted, err := service.NewAdmin(storage, auth).Seed(ctx, domain.RegistrationData{
		Credentials: domain.Credentials{Email: email, Password: password},
		Name:        name,
	})
	if err != nil {
		fatal("%v", err)
	}
	if !promoted {
		fmt.Printf("%s is already an admin (id %s)\n", user.Email, user.Id)
		return
	}
	fmt.Printf("%s is now an admin (id %s)\n", user.Email, user.Id)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "seed-admin: "+format+"\n", args...)
	os.Exit(1)
}
