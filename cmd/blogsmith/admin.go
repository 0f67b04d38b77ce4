// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blogsmith/internal/cache"
	"blogsmith/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending article archive migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(os.Stderr)
			if err != nil {
				return err
			}
			if !cfg.ArchiveEnabled {
				return fmt.Errorf("POSTGRES_HOST is not set")
			}
			db, err := database.Connect(cmd.Context(), cfg.DSN())
			if err != nil {
				return err
			}
			defer db.Close()
			return database.Migrate(cmd.Context(), db)
		},
	}
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the document cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached article document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(os.Stderr)
			if err != nil {
				return err
			}
			if !cfg.CacheEnabled {
				return fmt.Errorf("VALKEY_HOST is not set")
			}
			client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
			if err != nil {
				return err
			}
			defer client.Close()
			cache.NewDocumentCache(client, cache.DefaultDocumentTTL).InvalidateAll(cmd.Context())
			return nil
		},
	})
	return cmd
}
