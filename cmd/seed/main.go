// Command seed applies the schema and loads the initial admin account and a
// handful of sample outdoors. Running it twice changes nothing.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/outdoor-rental/internal/config"
	"github.com/iliyamo/outdoor-rental/internal/database"
	"github.com/iliyamo/outdoor-rental/internal/logging"
	"github.com/iliyamo/outdoor-rental/internal/model"
	"github.com/iliyamo/outdoor-rental/internal/repository"
	"github.com/iliyamo/outdoor-rental/internal/utils"
)

const (
	adminEmail    = "admin@outdoors.com"
	adminPassword = "admin123"
)

func str(s string) *string { return &s }

var sampleOutdoors = []model.Outdoor{
	{Name: "Outdoor Av. Principal", Location: "Av. Principal, 1000 - Centro", Dimensions: "9x3m",
		MonthlyPrice: decimal.NewFromInt(5000), Description: str("Alto fluxo de veículos no centro"), Active: true},
	{Name: "Outdoor BR-101", Location: "BR-101, Km 45", Dimensions: "12x4m",
		MonthlyPrice: decimal.NewFromInt(8000), Description: str("Rodovia com visibilidade nos dois sentidos"), Active: true},
	{Name: "Outdoor Shopping", Location: "Estacionamento do Shopping Center", Dimensions: "6x3m",
		MonthlyPrice: decimal.NewFromInt(3500), Description: str("Entrada principal do estacionamento"), Active: true},
	{Name: "Outdoor Praça Central", Location: "Praça Central, s/n", Dimensions: "9x3m",
		MonthlyPrice: decimal.NewFromInt(4500), Description: str("Área de pedestres e comércio"), Active: true},
	{Name: "Outdoor Aeroporto", Location: "Rodovia do Aeroporto, Km 2", Dimensions: "15x5m",
		MonthlyPrice: decimal.NewFromInt(7000), Description: str("Acesso ao terminal de passageiros"), Active: true},
}

func main() {
	config.LoadDotenv()
	cfg := config.Load()
	logging.Init("outdoor-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.Open(ctx, database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}

	users := repository.NewUserRepo(db)
	if _, err := users.GetByEmail(ctx, adminEmail); errors.Is(err, repository.ErrUserNotFound) {
		hash, err := utils.HashPassword(adminPassword, cfg.BcryptCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash admin password")
		}
		id, err := users.Create(ctx, adminEmail, hash, "Administrator", model.RoleAdmin)
		if err != nil {
			log.Fatal().Err(err).Msg("create admin")
		}
		log.Info().Uint64("user_id", id).Str("email", adminEmail).Msg("admin user created")
	} else if err != nil {
		log.Fatal().Err(err).Msg("look up admin")
	} else {
		log.Info().Str("email", adminEmail).Msg("admin user already present")
	}

	outdoors := repository.NewOutdoorRepo(db)
	existing, err := outdoors.List(ctx, model.OutdoorFilter{})
	if err != nil {
		log.Fatal().Err(err).Msg("list outdoors")
	}
	have := make(map[string]bool, len(existing))
	for _, o := range existing {
		have[o.Name] = true
	}
	for _, o := range sampleOutdoors {
		if have[o.Name] {
			continue
		}
		o := o
		if err := outdoors.Create(ctx, &o); err != nil {
			log.Fatal().Err(err).Str("name", o.Name).Msg("create outdoor")
		}
		log.Info().Uint64("outdoor_id", o.ID).Str("name", o.Name).Msg("outdoor created")
	}
	log.Info().Msg("seed complete")
}
