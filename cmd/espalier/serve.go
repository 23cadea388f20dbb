package main

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	serverhttp "github.com/aretw0/espalier/pkg/adapters/http"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	redisstore "github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve [fitted.json ...]",
	Short: "Serve fitted recipes over HTTP",
	Long: `Starts the apply service. Fitted recipe files given as arguments are
preloaded into the store under their base name (without extension);
recipes can also be uploaded at runtime via PUT /recipes/{id}.

With --redis the store is shared between processes; otherwise recipes
live in memory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis")
		return runServe(cmd, addr, redisAddr, args)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("redis", "", "Redis address for a shared recipe store (host:port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, addr, redisAddr string, preload []string) error {
	logger := newLogger(cmd)

	var store ports.RecipeStore
	if redisAddr != "" {
		store = redisstore.New(redisAddr, "", 0)
		logger.Info("using redis recipe store", "addr", redisAddr)
	} else {
		store = memory.NewStore()
	}

	ctx := context.Background()
	for _, path := range preload {
		fitted, err := loadFitted(path)
		if err != nil {
			return fmt.Errorf("preload %s: %w", path, err)
		}
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := store.Save(ctx, id, fitted); err != nil {
			return fmt.Errorf("preload %s: %w", path, err)
		}
		logger.Info("recipe preloaded", "id", id, "path", path)
	}

	handler := serverhttp.NewHandler(store, prometheus.NewRegistry(), serverhttp.WithLogger(logger))
	logger.Info("apply service listening", "addr", addr)
	return http.ListenAndServe(addr, handler)
}
