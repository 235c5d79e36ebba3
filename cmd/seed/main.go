// Command seed wipes the board's tables and fills them with demo accounts,
// companies, jobs and applications for local development.
package main

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/config"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/database"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/utilities"
)

func mustHash(password string) string {
	hashed, err := utilities.HashPassword(password)
	if err != nil {
		log.Fatal("failed to hash password: ", err)
	}
	return hashed
}

func main() {
	cfg := config.Load()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}
	defer db.Close()

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.Application{}, &model.Job{}, &model.User{}, &model.Company{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}

		companies := []model.Company{
			{
				Name:        "TechCorp Solutions",
				Description: "Leading technology solutions provider specializing in software development and digital transformation.",
				LogoURL:     "https://via.placeholder.com/150x150/3B82F6/FFFFFF?text=TC",
			},
			{
				Name:        "InnovateSoft",
				Description: "Innovative software company focused on creating cutting-edge applications and platforms.",
				LogoURL:     "https://via.placeholder.com/150x150/10B981/FFFFFF?text=IS",
			},
			{
				Name:        "DataFlow Systems",
				Description: "Data analytics and business intelligence solutions for modern enterprises.",
				LogoURL:     "https://via.placeholder.com/150x150/F59E0B/FFFFFF?text=DF",
			},
		}
		if err := tx.Create(&companies).Error; err != nil {
			return err
		}

		admin := model.User{
			Name:     "Admin User",
			Email:    "admin@jobboard.com",
			Password: mustHash("admin123"),
			Role:     model.RoleAdmin,
		}
		companyUser := model.User{
			Name:      "Company Manager",
			Email:     "company@jobboard.com",
			Password:  mustHash("company123"),
			Role:      model.RoleCompany,
			CompanyID: &companies[0].ID,
		}
		user := model.User{
			Name:     "John Doe",
			Email:    "user@jobboard.com",
			Password: mustHash("user123"),
			Role:     model.RoleUser,
		}
		if err := tx.Create([]*model.User{&admin, &companyUser, &user}).Error; err != nil {
			return err
		}

		jobs := []model.Job{
			{
				Title:       "Senior Full-Stack Developer",
				Description: "We are looking for an experienced Full-Stack Developer to join our team. You will be responsible for developing and maintaining web applications using modern technologies like React, Node.js, and PostgreSQL. The ideal candidate should have 3+ years of experience in web development.",
				Location:    "Berlin, Germany",
				CompanyID:   companies[0].ID,
			},
			{
				Title:       "Frontend Developer (React)",
				Description: "Join our frontend team to build beautiful and responsive user interfaces. We use React, TypeScript, and modern CSS frameworks. Experience with state management (Redux, Zustand) is a plus.",
				Location:    "Munich, Germany",
				CompanyID:   companies[0].ID,
			},
			{
				Title:       "Backend Engineer (Node.js)",
				Description: "We need a skilled backend engineer to develop robust APIs and microservices. Experience with Node.js, Express, and databases (PostgreSQL, MongoDB) is required. Knowledge of Docker and AWS is a plus.",
				Location:    "Hamburg, Germany",
				CompanyID:   companies[1].ID,
			},
			{
				Title:       "DevOps Engineer",
				Description: "Help us build and maintain our cloud infrastructure. Experience with AWS, Docker, Kubernetes, and CI/CD pipelines is required. Knowledge of monitoring and logging tools is a plus.",
				Location:    "Frankfurt, Germany",
				CompanyID:   companies[1].ID,
			},
			{
				Title:       "Data Scientist",
				Description: "Join our data science team to analyze large datasets and build machine learning models. Experience with Python, pandas, scikit-learn, and SQL is required. Knowledge of deep learning frameworks is a plus.",
				Location:    "Stuttgart, Germany",
				CompanyID:   companies[2].ID,
			},
			{
				Title:       "Product Manager",
				Description: "Lead product development from conception to launch. Experience with agile methodologies, user research, and product analytics is required. Technical background is a plus.",
				Location:    "Cologne, Germany",
				CompanyID:   companies[2].ID,
			},
		}
		if err := tx.Create(&jobs).Error; err != nil {
			return err
		}

		applications := []model.Application{
			{
				UserID: user.ID,
				JobID:  jobs[0].ID,
				CVURL:  "/uploads/sample-cv-1.pdf",
				Status: model.ApplicationStatusPending,
			},
			{
				UserID: user.ID,
				JobID:  jobs[2].ID,
				CVURL:  "/uploads/sample-cv-2.pdf",
				Status: model.ApplicationStatusPending,
			},
		}
		return tx.Create(&applications).Error
	})
	if err != nil {
		log.Fatalf("Seed failed: %s", err)
	}

	fmt.Println("Database seeded successfully!")
	fmt.Println("Test accounts:")
	fmt.Println("  Admin:   admin@jobboard.com / admin123")
	fmt.Println("  Company: company@jobboard.com / company123")
	fmt.Println("  User:    user@jobboard.com / user123")
}
