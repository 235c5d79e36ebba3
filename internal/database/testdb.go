package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/config"
	m "github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/utilities"
)

var testDBInstance *Service
var teardown func(context.Context) error

// Exported seeded records for handler and middleware tests.
var (
	TestAdmin        m.User
	TestCompanyUserA m.User
	TestCompanyUserB m.User
	TestUser1        m.User
	TestUser2        m.User

	TestCompanyA m.Company
	TestCompanyB m.Company

	TestJobA1 m.Job
	TestJobA2 m.Job
	TestJobB1 m.Job

	TestApplication1 m.Application

	// TestSeedPassword is the plaintext password shared by all seeded users.
	TestSeedPassword = "SeedPass123!"
)

// GetTestDB starts a PostgreSQL test container and returns a teardown
// function, the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context) error, *Service, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	cfg := &config.Config{
		UseConnStr: true,
		DBConnStr: fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
		MaxFileSize: 5 << 20,
		TokenTTL:    24 * time.Hour,
		JWTSecret:   "test-secret",
	}

	db, err := New(cfg)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts the sample companies, accounts, jobs and one
// application the handler tests build on. It is a no-op on a non-empty DB.
func seedTestData(db *Service) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	TestCompanyA = m.Company{Name: "Acme Robotics", Description: "Industrial robots and automation platforms."}
	TestCompanyB = m.Company{Name: "Borealis Labs", Description: "Climate analytics for the energy sector."}
	if err := db.Create(&TestCompanyA).Error; err != nil {
		return err
	}
	if err := db.Create(&TestCompanyB).Error; err != nil {
		return err
	}

	users := []*m.User{
		{Name: "Admin User", Email: "admin@example.com", Password: hashedPwd, Role: m.RoleAdmin},
		{Name: "Acme Recruiter", Email: "recruiter@acme.example.com", Password: hashedPwd, Role: m.RoleCompany, CompanyID: &TestCompanyA.ID},
		{Name: "Borealis Recruiter", Email: "recruiter@borealis.example.com", Password: hashedPwd, Role: m.RoleCompany, CompanyID: &TestCompanyB.ID},
		{Name: "Alice Seeker", Email: "alice@example.com", Password: hashedPwd, Role: m.RoleUser},
		{Name: "Bob Seeker", Email: "bob@example.com", Password: hashedPwd, Role: m.RoleUser},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	TestAdmin = *users[0]
	TestCompanyUserA = *users[1]
	TestCompanyUserB = *users[2]
	TestUser1 = *users[3]
	TestUser2 = *users[4]

	jobs := []*m.Job{
		{Title: "Robotics Engineer", Description: "Design and maintain robotic arms for the assembly line.", Location: "Berlin", CompanyID: TestCompanyA.ID},
		{Title: "Field Technician", Description: "Install and service automation hardware on customer sites.", Location: "Hamburg", CompanyID: TestCompanyA.ID},
		{Title: "Data Scientist", Description: "Build forecasting models over climate and grid datasets.", Location: "Oslo", CompanyID: TestCompanyB.ID},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJobA1 = *jobs[0]
	TestJobA2 = *jobs[1]
	TestJobB1 = *jobs[2]

	TestApplication1 = m.Application{
		UserID: TestUser1.ID,
		JobID:  TestJobA1.ID,
		CVURL:  "/uploads/seed-cv.pdf",
		Status: m.ApplicationStatusPending,
	}
	return db.Create(&TestApplication1).Error
}
