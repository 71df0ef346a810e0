package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog"

	"github.com/gwillem/servocombo/pkg/combo"
)

type CompileCommand struct {
	In      string `short:"i" long:"in" description:"Combo script (default from config)"`
	Out     string `short:"o" long:"out" description:"Command file to write (default from config)"`
	Preview bool   `long:"preview" description:"Print a table of the compiled command lines"`
}

func (c *CompileCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if c.In != "" {
		cfg.ComboFile = c.In
	}
	if c.Out != "" {
		cfg.CommandFile = c.Out
	}

	log := newLogger()
	results, err := compileFile(cfg.ComboFile, cfg.CommandFile, nil, log)
	if err != nil {
		return err
	}

	if c.Preview {
		fmt.Println(renderPreview(results))
	}
	fmt.Println(successStyle.Render("Compiled " + cfg.ComboFile + " → " + cfg.CommandFile))
	return nil
}

// compileFile compiles the combo script at in, writes the command file to
// out and, when extra is non-nil, mirrors the command file to it.
func compileFile(in, out string, extra io.Writer, log zerolog.Logger) ([]combo.Compiled, error) {
	src, err := os.Open(in)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("combo script %s not found", in)
	}
	if err != nil {
		return nil, fmt.Errorf("open combo script: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return nil, fmt.Errorf("create command file: %w", err)
	}
	defer dst.Close()

	var w io.Writer = dst
	if extra != nil {
		w = io.MultiWriter(dst, extra)
	}
	enc := combo.NewEncoder(w)

	var results []combo.Compiled
	err = combo.CompileScript(src, func(c combo.Compiled) error {
		log.Info().
			Int("line", c.LineNum).
			Str("combo", c.Text).
			Int("commands", len(c.Batch)).
			Msg("compiled")
		results = append(results, c)
		return enc.Encode(c.Batch)
	})
	if err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("write command file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("write command file: %w", err)
	}
	return results, nil
}

func renderPreview(results []combo.Compiled) string {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	tableHeaderStyle := cellStyle.Bold(true).Foreground(lipgloss.Color("12"))
	emptyStyle := cellStyle.Foreground(lipgloss.Color("241"))

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		lines := make([]string, len(r.Batch))
		for i, l := range r.Batch {
			lines[i] = l.String()
		}
		cmds := strings.Join(lines, "\n")
		if cmds == "" {
			cmds = "(no keys)"
		}
		rows = append(rows, []string{strconv.Itoa(r.LineNum), r.Text, cmds})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		BorderRow(true).
		Headers("Line", "Combo", "Commands").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 2 && row >= 0 && row < len(results) && len(results[row].Batch) == 0 {
				return emptyStyle
			}
			return cellStyle
		}).
		Render()
}
