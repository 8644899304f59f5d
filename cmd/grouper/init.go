package main

import (
	"fmt"
	"os"
	"path/filepath"

	"grouper/internal/config"
	"grouper/internal/logging"

	"github.com/spf13/cobra"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize grouper configuration",
	Long:  "Creates a .grouper/ directory with default configuration in the current directory",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .grouper directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	grouperDir := filepath.Join(cwd, ".grouper")
	if _, statErr := os.Stat(grouperDir); statErr == nil {
		if !initForce {
			// Idempotent behavior: already initialized is success (CI-friendly)
			fmt.Println("grouper already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(grouperDir, "config.json"))
			fmt.Println("\nRun 'grouper init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(grouperDir); removeErr != nil {
			return removeErr
		}
		logger.Info("Removed existing .grouper directory", nil)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(cwd); err != nil {
		return err
	}

	fmt.Println("Initialized grouper.")
	fmt.Printf("Configuration at: %s\n", filepath.Join(grouperDir, "config.json"))
	fmt.Println("\nNext: run 'grouper analyze' to build the first snapshot.")
	return nil
}
