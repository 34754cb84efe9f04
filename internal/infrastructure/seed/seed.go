package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/logger"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	Users    []UserSeed    `yaml:"users"`
	Listings []ListingSeed `yaml:"listings"`
}

type UserSeed struct {
	entity.User   `yaml:",inline"`
	JoinedDaysAgo int `yaml:"joined_days_ago"`
}

type ListingSeed struct {
	ID                   string `yaml:"id"`
	SellerID             string `yaml:"seller_id"`
	entity.ListingFields `yaml:",inline"`
	Badge                string `yaml:"badge"`
	PostedDaysAgo        int    `yaml:"posted_days_ago"`
}

// Load reads a catalog from path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file %s: %w", path, err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	return &catalog, nil
}

// ListingCreator is the part of the listing store the seeder needs.
type ListingCreator interface {
	ImportListing(ctx context.Context, listing *entity.Listing) error
}

// Apply stores the catalog's users, then its listings in file order.
func Apply(ctx context.Context, catalog *Catalog, users repository.UserRepository, listings ListingCreator, now time.Time) error {
	for _, u := range catalog.Users {
		user := u.User
		user.JoinedAt = now.AddDate(0, 0, -u.JoinedDaysAgo)
		if err := users.Create(ctx, &user); err != nil {
			return fmt.Errorf("seed user %s: %w", user.ID, err)
		}
	}

	for _, l := range catalog.Listings {
		listing := &entity.Listing{
			ID:             l.ID,
			SellerID:       l.SellerID,
			Name:           l.Name,
			Category:       l.Category,
			Condition:      l.Condition,
			Price:          l.Price,
			OriginalPrice:  l.OriginalPrice,
			Description:    l.Description,
			MeetupLocation: l.MeetupLocation,
			ImageSrc:       l.ImageSrc,
			ImageAlt:       l.ImageAlt,
			Badge:          l.Badge,
			PostedAt:       now.AddDate(0, 0, -l.PostedDaysAgo),
		}
		if err := listings.ImportListing(ctx, listing); err != nil {
			return fmt.Errorf("seed listing %q: %w", l.Name, err)
		}
	}

	logger.Info("Seeded %d users and %d listings", len(catalog.Users), len(catalog.Listings))
	return nil
}
