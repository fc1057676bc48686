package store

import (
	"github.com/avvvet/gamehub-services/internal/gamehub/models"
	"github.com/shopspring/decimal"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS games (
		id           BIGSERIAL PRIMARY KEY,
		title        TEXT NOT NULL,
		genre        TEXT NOT NULL,
		platform     TEXT NOT NULL,
		developer    TEXT,
		release_date DATE,
		price        NUMERIC(10,2),
		description  TEXT,
		image_url    TEXT,
		rating       NUMERIC(3,1),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS games_created_at_idx ON games (created_at DESC)`,
}

// created_at and updated_at hold unix microseconds.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS games (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		title        TEXT NOT NULL,
		genre        TEXT NOT NULL,
		platform     TEXT NOT NULL,
		developer    TEXT,
		release_date TEXT,
		price        DECIMAL(10,2),
		description  TEXT,
		image_url    TEXT,
		rating       DECIMAL(3,1),
		created_at   INTEGER NOT NULL,
		updated_at   INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS games_created_at_idx ON games (created_at DESC)`,
}

// sampleGames is the first-run catalog.
var sampleGames = []models.GameInput{
	{
		Title:       strPtr("The Legend of Zelda: Breath of the Wild"),
		Genre:       strPtr("Adventure"),
		Platform:    strPtr("Nintendo Switch"),
		Developer:   strPtr("Nintendo"),
		ReleaseDate: strPtr("2017-03-03"),
		Price:       nullDecimal("59.99"),
		Description: strPtr("An open-world adventure that redefines the Zelda series."),
		Rating:      nullDecimal("9.7"),
	},
	{
		Title:       strPtr("Cyberpunk 2077"),
		Genre:       strPtr("RPG"),
		Platform:    strPtr("PC"),
		Developer:   strPtr("CD Projekt Red"),
		ReleaseDate: strPtr("2020-12-10"),
		Price:       nullDecimal("39.99"),
		Description: strPtr("An open-world RPG set in Night City, a megalopolis obsessed with power, glamour and body modification."),
		Rating:      nullDecimal("8.1"),
	},
	{
		Title:       strPtr("God of War"),
		Genre:       strPtr("Action"),
		Platform:    strPtr("PlayStation 5"),
		Developer:   strPtr("Santa Monica Studio"),
		ReleaseDate: strPtr("2018-04-20"),
		Price:       nullDecimal("49.99"),
		Description: strPtr("Kratos returns in a new Norse adventure alongside his son Atreus."),
		Rating:      nullDecimal("9.5"),
	},
	{
		Title:       strPtr("Hades"),
		Genre:       strPtr("Action"),
		Platform:    strPtr("PC"),
		Developer:   strPtr("Supergiant Games"),
		ReleaseDate: strPtr("2020-09-17"),
		Price:       nullDecimal("24.99"),
		Description: strPtr("An action roguelike where you play as the son of Hades."),
		Rating:      nullDecimal("9.2"),
	},
}

func strPtr(s string) *string { return &s }

func nullDecimal(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}
