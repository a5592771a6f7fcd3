package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"auctions/internal/config"
	"auctions/internal/db"
	"auctions/internal/logger"
	"auctions/internal/model"
	"auctions/internal/repository"
	"auctions/internal/service"
)

var defaultCategories = []string{
	"Antiques",
	"Books",
	"Electronics",
	"Fashion",
	"Home",
	"Music",
	"Sports",
	"Toys",
}

// seedCategory is one entry of a category seed document.
type seedCategory struct {
	Name string `json:"name"`
}

func main() {
	source := flag.String("source", "", "URL or file path of a JSON array of {\"name\": ...}; built-in list when empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", map[string]any{"error": err.Error()})
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("database init failed", map[string]any{"error": err.Error()})
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal("auto-migrate failed", map[string]any{"error": err.Error()})
	}

	names, err := loadNames(*source)
	if err != nil {
		logger.Fatal("failed to load categories", map[string]any{"error": err.Error(), "source": *source})
	}
	logger.Info("loaded categories", map[string]any{"count": len(names), "source": *source})

	ctx := context.Background()
	created, skipped, err := seedCategories(ctx, repository.NewCategoryRepository(gormDB), names)
	if err != nil {
		logger.Fatal("seed failed", map[string]any{"error": err.Error()})
	}
	logger.Info("seed completed", map[string]any{"created": created, "skipped": skipped})
}

func loadNames(source string) ([]string, error) {
	if source == "" {
		return defaultCategories, nil
	}

	var body []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetch(source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}
	return parseNames(body)
}

func fetch(url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch categories: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func parseNames(body []byte) ([]string, error) {
	var items []seedCategory
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		if name := strings.TrimSpace(item.Name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// seedCategories creates the categories whose slug is free. Existing, reserved and unsluggable names are skipped.
func seedCategories(ctx context.Context, repo repository.CategoryRepository, names []string) (created, skipped int, err error) {
	for _, name := range names {
		slug := service.Slugify(name)
		if slug == "" || slug == service.ReservedSlug {
			logger.Warn("skipping category", map[string]any{"name": name, "slug": slug})
			skipped++
			continue
		}
		exists, err := repo.ExistsBySlug(ctx, slug)
		if err != nil {
			return created, skipped, fmt.Errorf("check slug %q: %w", slug, err)
		}
		if exists {
			skipped++
			continue
		}
		if err := repo.Create(ctx, &model.Category{Name: name, Slug: slug}); err != nil {
			return created, skipped, fmt.Errorf("create category %q: %w", name, err)
		}
		created++
	}
	return created, skipped, nil
}
