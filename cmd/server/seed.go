package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

// seedFixture is the demo data loaded at startup.
type seedFixture struct {
	Users []models.User `yaml:"users"`
	Items []seedItem    `yaml:"items"`
}

type seedItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Available   bool   `yaml:"available"`
	OwnerEmail  string `yaml:"owner_email"`
}

func seedPath(cfg *config.Config) string {
	if p := os.Getenv("SEED_PATH"); p != "" {
		return p
	}
	return cfg.Seed.Path
}

func loadSeed(path string) (*seedFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	var fixture seedFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &fixture, nil
}

// applySeed creates fixture users and items through the services.
// Users whose email is taken and items the owner already lists are skipped.
func applySeed(ctx context.Context, path string, svc api.Services, logger *zerolog.Logger) error {
	if path == "" {
		return nil
	}

	fixture, err := loadSeed(path)
	if err != nil {
		logger.Error().Err(err).Str("seed_path", path).Msg("load seed")
		return err
	}

	for i := range fixture.Users {
		user := fixture.Users[i]
		if err := svc.Users.CreateUser(ctx, &user); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			return fmt.Errorf("seed user %s: %w", user.Email, err)
		}
	}

	users, err := svc.Users.GetAllUsers(ctx)
	if err != nil {
		return err
	}
	owners := make(map[string]int64, len(users))
	for _, u := range users {
		owners[strings.ToLower(u.Email)] = u.ID
	}

	created := 0
	for _, it := range fixture.Items {
		ownerID, ok := owners[strings.ToLower(strings.TrimSpace(it.OwnerEmail))]
		if !ok {
			return fmt.Errorf("seed item %q: unknown owner %s", it.Name, it.OwnerEmail)
		}

		existing, err := svc.Items.GetItemsByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		if hasItem(existing, it.Name) {
			continue
		}

		available := it.Available
		input := models.ItemInput{Name: it.Name, Description: it.Description, Available: &available}
		if _, err := svc.Items.AddItem(ctx, input, ownerID); err != nil {
			return fmt.Errorf("seed item %q: %w", it.Name, err)
		}
		created++
	}

	logger.Info().Str("seed_path", path).Int("users", len(fixture.Users)).Int("items_created", created).Msg("seed applied")
	return nil
}

func hasItem(items []*models.Item, name string) bool {
	for _, item := range items {
		if item.Name == name {
			return true
		}
	}
	return false
}
