package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rateflix/rateflix/internal/assistant"
	"github.com/rateflix/rateflix/internal/config"
	"github.com/rateflix/rateflix/internal/storage"
)

// --- chat ---

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Send one message to the running assistant",
	Long: `Send one message to the running assistant.

Examples:
  rateflix chat "recommend a sci-fi movie for tonight"
  rateflix chat --user 2 "listemden once hangisini izleyeyim?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")
		message := strings.Join(args, " ")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/ai/chat", map[string]any{
			"userId":  userID,
			"message": message,
		})
		if err != nil {
			return err
		}

		var result assistant.Result
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		fmt.Println(result.Reply)
		if result.UsedFallback {
			mode := "Fallback"
			if result.FallbackReason != "" {
				mode = fmt.Sprintf("Fallback (%s)", result.FallbackReason)
			}
			printStatus("Mode", "%s | %s", mode, result.AssistantVersion)
		}
		return nil
	},
}

func init() {
	chatCmd.Flags().Int64("user", 1, "user to answer for")
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// --- seed ---

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the catalog with a demo user and titles",
	Long: `Seed the catalog with a demo user and a handful of titles so the
fallback composer has something to recommend. Intended for local trials;
run it before starting the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()

		ctx := cmd.Context()
		userID, err := store.CreateUser(ctx, email, name)
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		printStep("Created user %d (%s)", userID, email)

		type seedTitle struct {
			title    string
			typ      string
			year     int
			genres   []string
			status   string
			rating   int
			favorite bool
		}
		titles := []seedTitle{
			{"Dune", storage.TypeMovie, 2021, []string{"Sci-Fi", "Adventure"}, storage.StatusWatched, 9, true},
			{"Arrival", storage.TypeMovie, 2016, []string{"Sci-Fi", "Drama"}, storage.StatusWatched, 8, false},
			{"Dark", storage.TypeSeries, 2017, []string{"Sci-Fi", "Mystery", "Thriller"}, storage.StatusWatched, 9, true},
			{"The Grand Budapest Hotel", storage.TypeMovie, 2014, []string{"Comedy", "Drama"}, storage.StatusWatched, 7, false},
			{"Severance", storage.TypeSeries, 2022, []string{"Sci-Fi", "Thriller"}, storage.StatusWatchlist, 0, false},
			{"Blade Runner 2049", storage.TypeMovie, 2017, []string{"Sci-Fi", "Drama"}, storage.StatusWatchlist, 0, false},
		}
		for _, s := range titles {
			titleID, err := store.CreateTitle(ctx, s.title, s.typ, s.year, s.genres)
			if err != nil {
				return fmt.Errorf("creating title %q: %w", s.title, err)
			}
			if err := store.UpsertUserTitle(ctx, storage.UserTitle{
				UserID:     userID,
				TitleID:    titleID,
				Status:     s.status,
				Rating:     s.rating,
				IsFavorite: s.favorite,
			}); err != nil {
				return fmt.Errorf("linking title %q: %w", s.title, err)
			}
		}

		printSuccess("Seeded %d titles for user %d", len(titles), userID)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("email", "demo@rateflix.local", "email for the demo user")
	seedCmd.Flags().String("name", "Demo", "first name for the demo user")
}
