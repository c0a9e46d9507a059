package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"aidfind/internal/config"
	"aidfind/internal/db"
	"aidfind/internal/model"
	"aidfind/internal/repository"
)

const seedPassword = "password123"

type seedUser struct {
	name  string
	email string
	role  model.Role
}

var seedUsers = []seedUser{
	{"Asha Verma", "asha@example.com", model.RoleSeeker},
	{"Ravi Patel", "ravi@example.com", model.RoleSeeker},
	{"Meera Iyer", "meera@example.com", model.RoleDonor},
	{"Karan Shah", "karan@example.com", model.RoleDonor},
}

type seedRequest struct {
	requester string // email of the seeker
	aidType   model.AidType
	details   string
	location  string
}

var seedRequests = []seedRequest{
	{"asha@example.com", model.AidTypeBlood, "O- blood needed for surgery", "City Hospital, Pune"},
	{"asha@example.com", model.AidTypeOxygen, "Oxygen concentrator for home care", "Kothrud, Pune"},
	{"ravi@example.com", model.AidTypeMedicine, "Insulin supply for two weeks", "Andheri, Mumbai"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Admin{}, &model.AidRequest{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	adminRepo := repository.NewAdminRepository(gormDB)
	requestRepo := repository.NewAidRequestRepository(gormDB)

	created := 0
	byEmail := make(map[string]*model.User, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, su.email)
		if err == nil {
			byEmail[su.email] = existing
			continue
		}
		user := &model.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: string(hash),
			Role:         su.role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to seed user %s: %v", su.email, err)
		}
		byEmail[su.email] = user
		created++
	}
	log.Printf("Seeded %d new users (%d already present)", created, len(seedUsers)-created)

	if _, err := adminRepo.FindByUsername(ctx, "admin"); err != nil {
		admin := &model.Admin{Username: "admin", PasswordHash: string(hash)}
		if err := adminRepo.Create(ctx, admin); err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
		log.Println("Seeded default admin (username: admin)")
	}

	existing, err := requestRepo.ListAll(ctx)
	if err != nil {
		log.Fatalf("Failed to list requests: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Requests already present (%d), skipping request seed", len(existing))
		return
	}

	created = 0
	for _, sr := range seedRequests {
		requester, ok := byEmail[sr.requester]
		if !ok {
			log.Fatalf("Seed request references unknown user %s", sr.requester)
		}
		request := &model.AidRequest{
			RequestedByID: requester.ID,
			AidType:       sr.aidType,
			Details:       sr.details,
			Location:      sr.location,
			Status:        model.StatusPending,
		}
		if err := requestRepo.Create(ctx, request); err != nil {
			log.Fatalf("Failed to seed request for %s: %v", sr.requester, err)
		}
		created++
	}
	log.Printf("Seed completed successfully, %d pending requests created", created)
}
