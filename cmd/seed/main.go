package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/linkgrove/linkgrove-v2/backend/config"
	"github.com/linkgrove/linkgrove-v2/backend/internal/database"
	"github.com/linkgrove/linkgrove-v2/backend/internal/models"
	"github.com/linkgrove/linkgrove-v2/backend/internal/types"
)

// Seeds a demo account with a populated page. Intended for local
// development only.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if config.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	var existing models.User
	if err := db.Where("email = ?", "demo@linkgrove.dev").First(&existing).Error; err == nil {
		log.Println("demo user already seeded")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{Email: "demo@linkgrove.dev", PasswordHash: string(hashed)}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}

	profile := models.Profile{
		UserID:      user.ID,
		Username:    "demo",
		DisplayName: "Demo Page",
		Bio:         "Everything in one place.",
		XP:          2450,
		Level:       3,
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Fatalf("failed to create profile: %v", err)
	}

	links := []models.Link{
		{ProfileID: profile.ID, Title: "Website", URL: "https://example.com", Position: 0},
		{ProfileID: profile.ID, Title: "Newsletter", URL: "https://example.com/news", Position: 1},
	}
	for i := range links {
		if err := db.Create(&links[i]).Error; err != nil {
			log.Fatalf("failed to create link: %v", err)
		}
	}

	widget := models.Widget{
		ProfileID: profile.ID,
		Type:      string(types.WidgetYouTube),
		Title:     "Latest video",
		URL:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}
	if err := db.Create(&widget).Error; err != nil {
		log.Fatalf("failed to create widget: %v", err)
	}

	layout := []types.LayoutSection{
		{ID: "bio", Type: types.SectionBio},
		{ID: "links", Type: types.SectionLinks},
		{ID: "gap", Type: types.SectionSpacer, Height: 32},
		{ID: "video", Type: types.SectionWidget, WidgetID: widget.ID.String()},
	}
	encoded, err := types.EncodeLayout(layout)
	if err != nil {
		log.Fatalf("failed to encode layout: %v", err)
	}
	if err := db.Model(&profile).Update("layout_json", string(encoded)).Error; err != nil {
		log.Fatalf("failed to store layout: %v", err)
	}

	log.Println("seeded demo@linkgrove.dev / demo-password at /demo")
}
