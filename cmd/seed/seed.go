package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/service"
)

// seedConfig is read from SEED_* environment variables.
type seedConfig struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
	AdminName     string `env:"SEED_ADMIN_NAME" envDefault:"Administrator"`
	AdminRole     string `env:"SEED_ADMIN_ROLE" envDefault:"admin"`
	SampleContent bool   `env:"SEED_SAMPLE_CONTENT" envDefault:"false"`
}

var errNothingToDo = errors.New("nothing to do: set SEED_ADMIN_EMAIL or SEED_SAMPLE_CONTENT")

type accountProvisioner interface {
	Provision(ctx context.Context, in service.ProvisionInput) (*domain.Account, error)
}

type projectCreator interface {
	Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error)
}

type teamCreator interface {
	Create(ctx context.Context, in domain.TeamMemberInput) (*domain.TeamMember, error)
}

type statsReader interface {
	Get(ctx context.Context) (*domain.Stats, error)
}

type seeder struct {
	accounts accountProvisioner
	projects projectCreator
	team     teamCreator
	stats    statsReader
	logger   *slog.Logger
}

// run provisions the admin account when SEED_ADMIN_EMAIL is set and loads
// sample content into empty tables when asked to.
func (s *seeder) run(ctx context.Context, cfg seedConfig) error {
	if cfg.AdminEmail == "" && !cfg.SampleContent {
		return errNothingToDo
	}

	if cfg.AdminEmail != "" {
		account, err := s.accounts.Provision(ctx, service.ProvisionInput{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			Name:     cfg.AdminName,
			Role:     cfg.AdminRole,
		})
		if err != nil {
			return fmt.Errorf("provision account: %w", err)
		}
		s.logger.InfoContext(ctx, "account provisioned",
			slog.String("account_id", account.ID),
			slog.String("email", account.Email),
			slog.String("role", account.Role),
		)
	}

	if cfg.SampleContent {
		return s.sampleContent(ctx)
	}
	return nil
}

func (s *seeder) sampleContent(ctx context.Context) error {
	stats, err := s.stats.Get(ctx)
	if err != nil {
		return fmt.Errorf("count content: %w", err)
	}

	if stats.TeamMembers == 0 {
		for _, m := range sampleTeam {
			if _, err := s.team.Create(ctx, m); err != nil {
				return fmt.Errorf("create team member %q: %w", m.Name, err)
			}
		}
		s.logger.InfoContext(ctx, "sample team members created", slog.Int("count", len(sampleTeam)))
	} else {
		s.logger.InfoContext(ctx, "team members present, skipping samples", slog.Int("count", stats.TeamMembers))
	}

	if stats.Projects == 0 {
		for _, p := range sampleProjects {
			if _, err := s.projects.Create(ctx, p); err != nil {
				return fmt.Errorf("create project %q: %w", p.Title, err)
			}
		}
		s.logger.InfoContext(ctx, "sample projects created", slog.Int("count", len(sampleProjects)))
	} else {
		s.logger.InfoContext(ctx, "projects present, skipping samples", slog.Int("count", stats.Projects))
	}
	return nil
}

var sampleTeam = []domain.TeamMemberInput{
	{
		Name:       "Rasel Ahmed",
		Role:       "Founder & Lead Developer",
		Bio:        "Full-stack developer who leads delivery of web and mobile projects.",
		OrderIndex: 0,
	},
	{
		Name:       "Nadia Karim",
		Role:       "UI/UX Designer",
		Bio:        "Designs interfaces and brand systems with a focus on usability.",
		OrderIndex: 1,
	},
	{
		Name:       "Tanvir Hasan",
		Role:       "Digital Marketing Lead",
		Bio:        "Plans campaigns across search, social and email.",
		OrderIndex: 2,
	},
}

var sampleProjects = []domain.ProjectInput{
	{
		Title:        "E-commerce Storefront",
		Description:  "Online store with product catalogue, cart and payment integration.",
		Technologies: []string{"Next.js", "PostgreSQL", "Stripe"},
		Featured:     true,
	},
	{
		Title:        "Clinic Booking App",
		Description:  "Cross-platform mobile app for booking and managing appointments.",
		Technologies: []string{"React Native", "Node.js"},
		Featured:     true,
	},
	{
		Title:        "Corporate Website Redesign",
		Description:  "Responsive redesign with a headless CMS and improved SEO.",
		Technologies: []string{"Tailwind CSS", "TypeScript"},
	},
}
