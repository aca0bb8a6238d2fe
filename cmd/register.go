package cmd

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"meezy.GO/config"
	storageRepo "meezy.GO/model/repository/storage"
	"meezy.GO/service/backend"
	cartService "meezy.GO/service/cart"
	"meezy.GO/service/catalog"
	"meezy.GO/service/debounce"
	"meezy.GO/terminal"
)

var registerCmd = &cobra.Command{
	Use:   "pos:register",
	Short: "Run the terminal register",
	Run: func(cmd *cobra.Command, args []string) {
		config.InitRedis()
		cfg := config.AppConfig

		db, err := config.NewDB()
		if err != nil {
			fmt.Fprintf(os.Stderr, "register: open store: %v\n", err)
			os.Exit(1)
		}
		if err := config.RunMigrations(db); err != nil {
			fmt.Fprintf(os.Stderr, "register: migrate store: %v\n", err)
			os.Exit(1)
		}

		client := backend.NewClient(cfg.BackendURL)
		resolver := catalog.NewResolver(client)
		resolver.SetSnapshotLimit(cfg.SnapshotLimit)
		resolver.SetSnapshotTTL(cfg.SnapshotTTL)
		if config.RedisClient != nil {
			resolver.SetSharedCache(catalog.NewRedisSnapshotCache(config.RedisClient))
		}
		store := cartService.NewStore(storageRepo.NewStorageRepository(db))

		// bubbletea owns the terminal from here; route logs away from it
		logFile, err := tea.LogToFile("meezy-register.log", "register")
		if err == nil {
			defer logFile.Close()
			log.SetOutput(logFile)
		}

		deb := debounce.New(cfg.ProductDebounce, cfg.ProductMinQuery)
		defer deb.Stop()

		p := tea.NewProgram(terminal.NewModel(resolver, store, deb), tea.WithAltScreen())
		go func() {
			for ev := range deb.Events() {
				p.Send(terminal.DebounceMsg{Event: ev})
			}
		}()
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "register: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
