// Package user provides operator commands for provisioning accounts and
// issuing access tokens. Authentication itself is handled upstream.
package user

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	userApp "github.com/ticketdesk/ticketdesk/internal/application/user"
	"github.com/ticketdesk/ticketdesk/internal/application/user/dto"
	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/auth"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/config"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/database"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/repository"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User administration",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newCreateCommand(),
		newTokenCommand(),
	)

	return cmd
}

func newCreateCommand() *cobra.Command {
	var req dto.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close()

			svc := userApp.NewService(repository.NewUserRepository(database.Get()), log)
			return createUser(cmd.Context(), svc, cmd.OutOrStdout(), req)
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name (required)")
	cmd.Flags().StringVar(&req.Department, "department", "", "Department")
	cmd.Flags().StringVar(&req.Role, "role", uservo.RoleUser.String(), "Role (Client, User, HelpDesk, Manager, Admin)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")

	return cmd
}

func newTokenCommand() *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close()

			svc := userApp.NewService(repository.NewUserRepository(database.Get()), log)
			jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer)
			return issueToken(cmd.Context(), svc, jwtSvc, cmd.OutOrStdout(), email, ttl)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email of the user (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, logger.NewLogger().Named("cli"), nil
}

type userCreator interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
}

type userFinder interface {
	GetUserByEmail(ctx context.Context, email string) (*dto.UserResponse, error)
}

type tokenGenerator interface {
	Generate(userID uint, email string, role uservo.Role, ttl time.Duration) (string, error)
}

func createUser(ctx context.Context, svc userCreator, out io.Writer, req dto.CreateUserRequest) error {
	resp, err := svc.CreateUser(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	fmt.Fprintf(out, "created user %d (%s, %s)\n", resp.ID, resp.Email, resp.Role)
	return nil
}

func issueToken(ctx context.Context, svc userFinder, tokens tokenGenerator, out io.Writer, email string, ttl time.Duration) error {
	u, err := svc.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !u.IsActive {
		return errors.NewForbiddenError("user is inactive", email)
	}

	token, err := tokens.Generate(u.ID, u.Email, uservo.Role(u.Role), ttl)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	fmt.Fprintln(out, token)
	return nil
}
