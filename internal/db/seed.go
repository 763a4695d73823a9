package db

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SeedCatalog populates the reference catalog (categories and locations)
// for a fresh install. Safe to re-run: rows are inserted by unique name.
func SeedCatalog(database *sql.DB) error {
	categories := []string{
		"Pothole",
		"Streetlight",
		"Garbage Collection",
		"Water Supply",
		"Drainage",
		"Road Damage",
		"Illegal Parking",
		"Stray Animals",
	}
	for _, name := range categories {
		if _, err := database.Exec(
			"INSERT OR IGNORE INTO categories (name) VALUES (?)", name,
		); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}

	locations := []struct {
		area     string
		address  string
		lat, lon float64
	}{
		{"Kothrud", "Kothrud Depot Road", 18.5074, 73.8077},
		{"Shivajinagar", "FC Road", 18.5308, 73.8475},
		{"Hadapsar", "Magarpatta Road", 18.5089, 73.9260},
		{"Aundh", "DP Road", 18.5590, 73.8070},
		{"Kharadi", "EON IT Park Road", 18.5515, 73.9450},
		{"Baner", "Baner-Pashan Link Road", 18.5590, 73.7868},
		{"Viman Nagar", "Airport Road", 18.5679, 73.9143},
		{"Swargate", "Satara Road", 18.5018, 73.8636},
	}
	for _, l := range locations {
		var count int
		if err := database.QueryRow(
			"SELECT COUNT(*) FROM locations WHERE area = ? AND address = ?", l.area, l.address,
		).Scan(&count); err != nil {
			return fmt.Errorf("seed locations: %w", err)
		}
		if count > 0 {
			continue
		}
		if _, err := database.Exec(
			"INSERT INTO locations (area, address, latitude, longitude) VALUES (?, ?, ?, ?)",
			l.area, l.address, l.lat, l.lon,
		); err != nil {
			return fmt.Errorf("seed locations: %w", err)
		}
	}

	return nil
}

// SeedFixtures populates the database with development fixtures: the
// catalog plus a staff account and a citizen account with known passwords.
func SeedFixtures(database *sql.DB) error {
	if err := SeedCatalog(database); err != nil {
		return err
	}

	users := []struct {
		name, phone, email, role, password string
	}{
		{"Demo Staff", "9000000001", "staff@civictrack.local", "staff", "staffpass"},
		{"Demo Citizen", "9000000002", "citizen@civictrack.local", "citizen", "citizenpass"},
	}
	for _, u := range users {
		var count int
		if err := database.QueryRow(
			"SELECT COUNT(*) FROM users WHERE email = ?", u.email,
		).Scan(&count); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if count > 0 {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if _, err := database.Exec(
			"INSERT INTO users (name, phone, email, role, password_hash) VALUES (?, ?, ?, ?, ?)",
			u.name, u.phone, u.email, u.role, string(hash),
		); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	return nil
}
