package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/aerissecure/deckgen"
	"github.com/aerissecure/deckgen/avatar"
	"github.com/aerissecure/deckgen/config"
	"github.com/aerissecure/deckgen/table"
)

// uidColumn holds underscore-prefixed Discord user IDs in the data
// sheet; the underscore keeps Excel from rounding them.
const uidColumn = "__uid"

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	dataPath := flag.String("data", "data.xlsx", "judging data workbook")
	tmplPath := flag.String("template", "template.pptx", "slide template deck")
	outPath := flag.String("out", "output.pptx", "output deck")
	settingsPath := flag.String("settings", "settings.yaml", "settings file")
	avatarDir := flag.String("avatar-dir", "avatars", "avatar download directory")
	flag.Parse()

	if err := run(*dataPath, *tmplPath, *outPath, *settingsPath, *avatarDir); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("ERROR:")+" "+err.Error())
		os.Exit(1)
	}
}

func run(dataPath, tmplPath, outPath, settingsPath, avatarDir string) error {
	// .env is optional; it only carries DISCORD_TOKEN.
	_ = godotenv.Load()

	s, err := config.Load(settingsPath)
	if err != nil {
		return err
	}

	if s.AvatarMode {
		if err := downloadAvatars(dataPath, avatarDir, s); err != nil {
			return err
		}
	}

	if err := deckgen.GenerateFile(dataPath, tmplPath, outPath, s); err != nil {
		return err
	}
	fmt.Println(okStyle.Render("Done:") + " " + outPath)
	return nil
}

// downloadAvatars prefetches contestant avatars so slide templates can
// reference them. A sheet without a uid column is not an error.
func downloadAvatars(dataPath, dir string, s config.Settings) error {
	data, size, err := openAt(dataPath)
	if err != nil {
		return err
	}
	defer data.Close()

	t, err := table.ParseTable(data, size)
	if err != nil {
		return err
	}
	col, ok := t.Column(uidColumn)
	if !ok {
		fmt.Println(warnStyle.Render("WARNING:") + " avatar mode is on but the data sheet has no " + uidColumn + " column")
		return nil
	}

	client := avatar.New(os.Getenv("DISCORD_TOKEN"), s.AvatarSize)
	ctx := context.Background()
	for row, v := range col.Cells {
		path, err := client.Download(ctx, v.String(), dir)
		if err != nil {
			var unknown *avatar.UnknownUserError
			if errors.As(err, &unknown) {
				fmt.Println(warnStyle.Render("WARNING:") + " " + err.Error())
				continue
			}
			return fmt.Errorf("avatar for row %d: %w", row, err)
		}
		if path != "" {
			fmt.Printf("avatar %d/%d %s\n", row+1, len(col.Cells), path)
		}
	}
	return nil
}

func openAt(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}
