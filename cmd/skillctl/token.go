package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"skill-sync-resume/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development access token for a user id",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rawID, _ := cmd.Flags().GetString("user")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		email, _ := cmd.Flags().GetString("email")

		secret := strings.TrimSpace(os.Getenv("JWT_ACCESS_SECRET"))
		if secret == "" {
			return errors.New("JWT_ACCESS_SECRET is not set")
		}

		userID := uuid.New()
		if rawID != "" {
			id, err := uuid.Parse(rawID)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			userID = id
		}

		tok, err := jwt.NewHMACService(secret).GenerateAccessToken(userID, email, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("user", "", "user id (default is a random id)")
	tokenCmd.Flags().String("email", "", "email claim")
	tokenCmd.Flags().Duration("ttl", time.Hour, "token lifetime")
}
