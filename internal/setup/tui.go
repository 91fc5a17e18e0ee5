package setup

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
	"github.com/vadiminshakov/walletpnl/config"
	"gopkg.in/yaml.v3"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// yamlConfig mirrors the yaml layout config.Get understands.
type yamlConfig struct {
	ListenAddr      string `yaml:"listen_addr,omitempty"`
	BscScanAPIKey   string `yaml:"bscscan_api_key,omitempty"`
	Wallet          string `yaml:"wallet,omitempty"`
	WindowStartHour int    `yaml:"window_start_hour"`
	UTCOffsetHours  int    `yaml:"utc_offset_hours"`
}

// RunTUI launches the terminal configuration wizard.
func RunTUI() error {
	var (
		wallet        string
		apiKey        string
		listenAddr    string
		windowHourStr string
		utcOffsetStr  string
		confirm       bool
	)

	// defaults
	listenAddr = config.DefaultListenAddr
	windowHourStr = strconv.Itoa(config.DefaultWindowStartHour)
	utcOffsetStr = strconv.Itoa(config.DefaultUTCOffsetHours)

	// step 1: welcome
	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("WALLET PNL CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Let's wire up your daily report.\n"))

	// wallet
	fmt.Println(stepStyle.Render("STEP 1: WALLET"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default wallet address").
				Description("Optional, can be passed per request later (0x...)").
				Value(&wallet).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if !common.IsHexAddress(s) {
						return fmt.Errorf("invalid format: must be a 0x-prefixed address")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// api key
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("WALLET PNL CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: EXPLORER ACCESS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("BscScan API Key").
				Description("Leave empty to use the BSCSCAN_API_KEY env variable").
				Value(&apiKey).
				EchoMode(huh.EchoModePassword),
		),
	).Run()
	if err != nil {
		return err
	}

	// server and window
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("WALLET PNL CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: SERVER AND WINDOW"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Listen Address").
				Description("Address the web server binds to (e.g. :8080)").
				Value(&listenAddr),
			huh.NewInput().
				Title("Window Start Hour").
				Description("Local hour the daily window opens at (0-23)").
				Value(&windowHourStr).
				Validate(validateHour),
			huh.NewInput().
				Title("UTC Offset Hours").
				Description("Timezone offset the window is anchored to (e.g. 8)").
				Value(&utcOffsetStr).
				Validate(validateOffset),
		),
	).Run()
	if err != nil {
		return err
	}

	// confirmation
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("WALLET PNL CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	maskedKey := "from environment"
	if apiKey != "" {
		maskedKey = "********"
	}
	summary := fmt.Sprintf(
		"Wallet: %s\nAPI Key: %s\nListen: %s\nWindow start hour: %s\nUTC offset: %s\n",
		orDash(wallet), maskedKey, listenAddr, windowHourStr, utcOffsetStr,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save and start").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	windowHour, _ := strconv.Atoi(windowHourStr)
	utcOffset, _ := strconv.Atoi(utcOffsetStr)

	cfg := yamlConfig{
		ListenAddr:      listenAddr,
		BscScanAPIKey:   apiKey,
		Wallet:          wallet,
		WindowStartHour: windowHour,
		UTCOffsetHours:  utcOffset,
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	filename := "config.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s\nStarting server...", filename)))
	time.Sleep(1500 * time.Millisecond) // small pause to read success message
	return nil
}

func validateHour(s string) error {
	h, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be an integer")
	}
	if h < 0 || h > 23 {
		return fmt.Errorf("must be between 0 and 23")
	}
	return nil
}

func validateOffset(s string) error {
	off, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be an integer")
	}
	if off < -12 || off > 14 {
		return fmt.Errorf("must be between -12 and 14")
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
