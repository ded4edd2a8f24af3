package main

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/config"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/spf13/cobra"
)

type tokenOutput struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"`
}

func newTokenCmd() *cobra.Command {
	var (
		claims jwt.AccessClaims
		role   string
		secret string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token signed with JWT_SECRET_KEY",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validator.IsInSlice(role, user.RoleValues) {
				return fmt.Errorf("--role must be one of %v", user.RoleValues)
			}
			claims.Role = user.Role(role)

			if secret == "" || ttl == 0 {
				cfg, err := config.FromEnv()
				if err != nil {
					return err
				}
				if secret == "" {
					secret = cfg.JWT.Secret
				}
				if ttl == 0 {
					ttl = cfg.JWT.AccessExpiration
				}
			}
			if secret == "" {
				return fmt.Errorf("no signing secret: set JWT_SECRET_KEY or pass --secret")
			}

			token, expiresAt, err := jwt.NewJWTService(secret, ttl).GenerateAccessToken(claims)
			if err != nil {
				return err
			}
			return writeJSON(cmd, tokenOutput{
				AccessToken: token,
				ExpiresAt:   time.Unix(expiresAt, 0).UTC().Format(time.RFC3339),
			})
		},
	}

	cmd.Flags().StringVar(&claims.UserID, "user", "", "User ID")
	cmd.Flags().StringVar(&claims.EmployeeID, "employee", "", "Employee ID")
	cmd.Flags().StringVar(&claims.CompanyID, "company", "", "Company ID")
	cmd.Flags().StringVar(&role, "role", string(user.RoleEmployee), "Role: owner, manager or employee")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret (default JWT_SECRET_KEY)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default JWT_ACCESS_EXPIRATION_TIME)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}
