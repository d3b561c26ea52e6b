package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "armario-outfits",
		Short: "Outfit composer backend: canvas sessions, item picker and outfit saving",
		Long: `armario-outfits serves the outfit canvas of the closet app.

Garments from the closet store are dropped onto a bounded canvas, arranged by
drag gestures and saved back to the store as outfits.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// In production, variables are set directly
			if os.Getenv("ENV") == "production" {
				return
			}
			// .env values override system environment variables
			if err := godotenv.Overload(".env"); err != nil {
				log.Printf("⚠️  .env file not found, using system environment variables")
			} else {
				log.Printf("✓ Loaded environment variables from .env")
			}
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newLayoutCmd())

	return cmd
}
