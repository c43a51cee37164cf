// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/mbtisaju/internal/auth"
	"github.com/tomtom215/mbtisaju/internal/config"
)

var errAdminDisabled = errors.New("JWT_SECRET is not set; admin tokens cannot be issued")

func newTokenCmd() *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "token <username>",
		Short: "Print a signed admin API token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			token, err := mintToken(cfg, args[0], role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", auth.RoleAdmin, "token role (admin or viewer)")
	return cmd
}

func mintToken(cfg *config.Config, username, role string) (string, error) {
	if !cfg.AdminEnabled() {
		return "", errAdminDisabled
	}
	if role != auth.RoleAdmin && role != auth.RoleViewer {
		return "", fmt.Errorf("unknown role %q", role)
	}
	jwt, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return "", fmt.Errorf("create JWT manager: %w", err)
	}
	return jwt.GenerateToken(username, role)
}
