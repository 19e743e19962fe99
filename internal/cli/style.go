package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

func printSuccess(message string) {
	fmt.Println(successStyle.Render("✓ " + message))
}

func printError(message string) {
	fmt.Println(errorStyle.Render("✗ " + message))
}

func printWarning(message string) {
	fmt.Println(warningStyle.Render("⚠ " + message))
}

func printInfo(message string) {
	fmt.Println(infoStyle.Render("ℹ " + message))
}
