package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jmorrell/makerboard/internal/config"
	"github.com/jmorrell/makerboard/internal/project"
	"github.com/jmorrell/makerboard/internal/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo accounts and project listings",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// demoPassword is shared by all seeded accounts. Local development only.
const demoPassword = "makerboard-demo"

type demoListing struct {
	owner   user.RegisterInput
	project project.CreateInput
}

var demoListings = []demoListing{
	{
		owner: user.RegisterInput{
			FullName: "Dr. Sarah Chen",
			Email:    "sarah.chen@example.com",
			Password: demoPassword,
			Title:    "Clinical Data Scientist",
		},
		project: project.CreateInput{
			Title:           "AI-Powered Healthcare Assistant",
			Description:     "Looking for ML engineers and healthcare professionals to build an AI tool for medical diagnostics.",
			LongDescription: "We are building a diagnostic assistant that combines medical imaging models with structured patient data. The goal is a clinician-facing tool that surfaces likely diagnoses with supporting evidence, not a black box.",
			Category:        "Healthcare",
			Skills:          []string{"Machine Learning", "Python", "Healthcare", "Data Science"},
			OpenRoles: []project.OpenRole{
				{Title: "ML Engineer", Description: "Train and evaluate the diagnostic models.", Skills: []string{"Python", "PyTorch"}, Commitment: "10 hrs/week"},
				{Title: "Clinical Advisor", Description: "Review model outputs against clinical practice.", Skills: []string{"Healthcare"}, Commitment: "4 hrs/week"},
			},
			Location: "Remote",
			Timeline: "6 months",
		},
	},
	{
		owner: user.RegisterInput{
			FullName: "Marcus Green",
			Email:    "marcus.green@example.com",
			Password: demoPassword,
			Title:    "Product Designer",
		},
		project: project.CreateInput{
			Title:           "Sustainable Urban Farming Platform",
			Description:     "Creating a digital platform to connect urban farmers with resources and local markets.",
			LongDescription: "The platform matches rooftop and community growers with local buyers, tracks seasonal capacity, and shares equipment between farms. We have early interest from two city councils.",
			Category:        "Sustainability",
			Skills:          []string{"UX/UI Design", "React", "Node.js", "Agriculture", "Mobile Development"},
			OpenRoles: []project.OpenRole{
				{Title: "Full-Stack Developer", Description: "Build the marketplace and grower dashboard.", Skills: []string{"React", "Node.js"}, Commitment: "12 hrs/week"},
				{Title: "Mobile Developer", Description: "Ship the grower companion app.", Skills: []string{"Mobile Development"}, Commitment: "8 hrs/week"},
				{Title: "Agronomy Advisor", Description: "Validate the crop planning features.", Skills: []string{"Agriculture"}, Commitment: "3 hrs/week"},
			},
			Location: "Portland, OR",
			Timeline: "Ongoing",
		},
	},
	{
		owner: user.RegisterInput{
			FullName: "Priya Patel",
			Email:    "priya.patel@example.com",
			Password: demoPassword,
			Title:    "Game Developer",
		},
		project: project.CreateInput{
			Title:           "AR Educational App for Children",
			Description:     "Developing an augmented reality app that makes learning fun and interactive for kids.",
			LongDescription: "Each lesson is a small AR scene children explore with a tablet: the solar system on the kitchen table, a volcano cutaway in the garden. We focus on ages 6 to 10 and design everything with teachers.",
			Category:        "Education",
			Skills:          []string{"Unity", "AR Development", "3D Modeling", "Educational Content"},
			OpenRoles: []project.OpenRole{
				{Title: "3D Artist", Description: "Model and texture the lesson scenes.", Skills: []string{"3D Modeling"}, Commitment: "6 hrs/week"},
				{Title: "Curriculum Writer", Description: "Turn lesson plans into interactive scripts.", Skills: []string{"Educational Content"}, Commitment: "5 hrs/week"},
			},
			Location: "Remote",
			Timeline: "9 months",
		},
	},
	{
		owner: user.RegisterInput{
			FullName: "James Wilson",
			Email:    "james.wilson@example.com",
			Password: demoPassword,
			Title:    "Smart Contract Engineer",
		},
		project: project.CreateInput{
			Title:           "Blockchain Supply Chain Tracker",
			Description:     "Building a transparent supply chain solution using blockchain technology for ethical sourcing.",
			LongDescription: "We record custody events for coffee and cocoa shipments on-chain so that roasters and consumers can verify origin claims. A pilot with two importers starts this autumn.",
			Category:        "Blockchain",
			Skills:          []string{"Solidity", "Smart Contracts", "React", "Supply Chain"},
			OpenRoles: []project.OpenRole{
				{Title: "Solidity Developer", Description: "Own the custody event contracts.", Skills: []string{"Solidity", "Smart Contracts"}, Commitment: "10 hrs/week"},
				{Title: "Frontend Developer", Description: "Build the shipment explorer.", Skills: []string{"React"}, Commitment: "8 hrs/week"},
				{Title: "Supply Chain Analyst", Description: "Map importer workflows onto the event model.", Skills: []string{"Supply Chain"}, Commitment: "4 hrs/week"},
				{Title: "QA Engineer", Description: "Test the pilot end to end.", Skills: []string{}, Commitment: "6 hrs/week"},
			},
			Location: "London, UK",
			Timeline: "4 months",
		},
	},
	{
		owner: user.RegisterInput{
			FullName: "Elena Rodriguez",
			Email:    "elena.rodriguez@example.com",
			Password: demoPassword,
			Title:    "Mobile Engineer",
		},
		project: project.CreateInput{
			Title:           "Mental Health Support Mobile App",
			Description:     "Creating an app that provides resources and community support for mental wellness.",
			LongDescription: "The app pairs guided exercises with moderated peer support circles. Everything is reviewed by licensed counselors, and the community features are designed to be safe by default.",
			Category:        "Health & Wellness",
			Skills:          []string{"React Native", "UI Design", "Psychology", "Backend Development"},
			OpenRoles: []project.OpenRole{
				{Title: "Backend Developer", Description: "Build the circles and moderation services.", Skills: []string{"Backend Development"}, Commitment: "10 hrs/week"},
				{Title: "UI Designer", Description: "Design calm, accessible screens.", Skills: []string{"UI Design"}, Commitment: "6 hrs/week"},
			},
			Location: "Remote",
			Timeline: "Ongoing",
		},
	},
	{
		owner: user.RegisterInput{
			FullName: "Ahmed Hassan",
			Email:    "ahmed.hassan@example.com",
			Password: demoPassword,
			Title:    "IoT Engineer",
		},
		project: project.CreateInput{
			Title:           "Renewable Energy Monitoring System",
			Description:     "Developing IoT sensors and dashboard for tracking solar and wind energy production.",
			LongDescription: "Low-cost LoRa sensors report panel and turbine output to a central dashboard that spots underperforming installations. We want community energy co-ops to run this themselves.",
			Category:        "Clean Energy",
			Skills:          []string{"IoT", "Data Visualization", "Electronics", "Cloud Computing"},
			OpenRoles: []project.OpenRole{
				{Title: "Data Visualization Developer", Description: "Build the production dashboard.", Skills: []string{"Data Visualization"}, Commitment: "8 hrs/week"},
			},
			Location: "Cairo, Egypt",
			Timeline: "1 year",
		},
	},
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	userService := user.NewService(user.NewStore(pool), cfg.Auth.BcryptCost)
	projectStore := project.NewStore(pool)
	projectService := project.NewService(projectStore)

	// Check if seed has already run.
	existing, err := projectStore.List(ctx)
	if err != nil {
		return fmt.Errorf("checking existing projects: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("demo data already exists, skipping seed")
		return nil
	}

	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	accounts := 0
	listings := 0
	for _, d := range demoListings {
		owner, err := userService.Register(ctx, d.owner)
		if err != nil {
			return fmt.Errorf("creating account %q: %w", d.owner.Email, err)
		}
		accounts++
		slog.Info("created account", "email", owner.Email, "id", owner.ID)

		p, err := projectService.Create(ctx, owner, d.project)
		if err != nil {
			return fmt.Errorf("creating project %q: %w", d.project.Title, err)
		}
		listings++
		slog.Info("created project", "title", p.Title, "id", p.ID)
	}

	fmt.Println()
	green.Println("=== Demo Data Seeded ===")
	fmt.Printf("Accounts:  %d created (password %q)\n", accounts, demoPassword)
	fmt.Printf("Projects:  %d listed\n", listings)
	fmt.Println("\nTry it:")
	cyan.Printf("  curl http://localhost:%d/api/projects?category=Healthcare\n", cfg.Server.Port)
	cyan.Printf("  curl -X POST http://localhost:%d/api/auth/login -d '{\"email\":\"sarah.chen@example.com\",\"password\":%q}'\n", cfg.Server.Port, demoPassword)

	return nil
}
