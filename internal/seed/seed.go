package seed

import (
	"errors"
	"fmt"
	"log"

	"muro/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data is generated.
type Options struct {
	GraffitiCount int
	AdminEmail    string
	AdminPassword string
}

// Run populates the database with demo data: the settings singleton, an admin
// account, and a spread of approved and pending graffitis.
func Run(db *gorm.DB, opts Options) error {
	if opts.GraffitiCount <= 0 {
		opts.GraffitiCount = 40
	}

	if err := EnsureSettings(db); err != nil {
		return fmt.Errorf("seeding settings: %w", err)
	}

	if opts.AdminEmail != "" {
		if _, err := EnsureAdmin(db, opts.AdminEmail, opts.AdminPassword); err != nil {
			return fmt.Errorf("seeding admin: %w", err)
		}
	}

	factory := NewFactory(db)
	graffitis := make([]*models.Graffiti, 0, opts.GraffitiCount)
	for i := 0; i < opts.GraffitiCount; i++ {
		graffitis = append(graffitis, factory.BuildGraffiti())
	}
	if err := factory.CreateGraffitisBatch(graffitis); err != nil {
		return fmt.Errorf("seeding graffitis: %w", err)
	}

	log.Printf("Seeded %d graffitis", opts.GraffitiCount)
	return nil
}

// EnsureSettings creates the settings singleton with defaults if it does not
// exist yet.
func EnsureSettings(db *gorm.DB) error {
	var settings models.Settings
	return db.
		Where(models.Settings{ID: models.SettingsID}).
		Attrs(models.DefaultSettings()).
		FirstOrCreate(&settings).Error
}

// EnsureAdmin creates (or promotes) an admin account with the given
// credentials. An existing account with the email is promoted and its
// password left untouched.
func EnsureAdmin(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if !user.IsAdmin {
			user.IsAdmin = true
			if err := db.Save(&user).Error; err != nil {
				return nil, err
			}
			log.Printf("Promoted %s to admin", email)
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if password == "" {
		return nil, fmt.Errorf("a password is required to create admin %s", email)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user = models.User{
		Username: "admin",
		Email:    email,
		Password: string(hashed),
		IsAdmin:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	log.Printf("Created admin account %s", email)
	return &user, nil
}
