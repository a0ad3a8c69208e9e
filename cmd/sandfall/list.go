package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenes",
	Long:  `Shows every scene a sandbox can start from.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	scenes := registry.List()

	if len(scenes) == 0 {
		fmt.Println("No scenes available.")
		return
	}

	fmt.Println("Available scenes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, s := range scenes {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")

	for _, s := range scenes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'sandfall play <id>' to open a scene.")
}
