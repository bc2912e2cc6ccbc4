package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/townreport/internal/config"
	"github.com/Iron-Ham/townreport/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View townreport logs",
	Long: `View and filter the townreport log, including rotated backups.

Examples:
  # Show the last 50 entries
  townreport logs

  # Show everything from the map screen
  townreport logs --view map -n 0

  # Follow logs in real-time
  townreport logs -f

  # Filter by log level
  townreport logs --level warn

  # Show logs from the last hour
  townreport logs --since 1h

  # Search for specific patterns
  townreport logs --grep "denied|failed"

  # Export as CSV
  townreport logs --format csv > logs.csv`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsTail   int
	logsFollow bool
	logsLevel  string
	logsSince  string
	logsGrep   string
	logsView   string
	logsFormat string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter logs matching pattern (regex)")
	logsCmd.Flags().StringVar(&logsView, "view", "", "Filter by screen (home, camera, map, ...)")
	logsCmd.Flags().StringVar(&logsFormat, "format", "pretty", "Output format: pretty, text, json or csv")
}

// Level colors for pretty output
var (
	logTimeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	logAttrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	logLevelStyle = map[string]lipgloss.Style{
		logging.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		logging.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		logging.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		logging.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// formatLogEntry formats a log entry for terminal output
func formatLogEntry(entry logging.LogEntry) string {
	var sb strings.Builder

	sb.WriteString(logTimeStyle.Render("[" + entry.Timestamp.Format("15:04:05.000") + "]"))
	sb.WriteString(" ")

	level := strings.ToUpper(entry.Level)
	if style, ok := logLevelStyle[level]; ok {
		sb.WriteString(style.Render("[" + level + "]"))
	} else {
		sb.WriteString("[" + level + "]")
	}

	sb.WriteString(" ")
	sb.WriteString(entry.Message)

	if entry.View != "" {
		sb.WriteString(" ")
		sb.WriteString(logAttrStyle.Render("view=" + entry.View))
	}
	if entry.ReportID != "" {
		sb.WriteString(" ")
		sb.WriteString(logAttrStyle.Render("report_id=" + entry.ReportID))
	}
	for key, value := range entry.Attrs {
		sb.WriteString(" ")
		sb.WriteString(logAttrStyle.Render(key + "="))
		sb.WriteString(fmt.Sprintf("%v", value))
	}

	return sb.String()
}

// logQuery holds the parsed filter flags.
type logQuery struct {
	filter logging.LogFilter
	grep   *regexp.Regexp
}

func parseLogQuery(level, since, grep, view string, now time.Time) (logQuery, error) {
	q := logQuery{filter: logging.LogFilter{View: view}}

	if level != "" {
		q.filter.Level = logging.ParseLevel(level)
	}
	if since != "" {
		d, err := time.ParseDuration(since)
		if err != nil {
			return q, fmt.Errorf("invalid duration format: %w", err)
		}
		q.filter.StartTime = now.Add(-d)
	}
	if grep != "" {
		re, err := regexp.Compile(grep)
		if err != nil {
			return q, fmt.Errorf("invalid grep pattern: %w", err)
		}
		q.grep = re
	}
	return q, nil
}

// apply filters entries, matching grep against the message and attributes.
func (q logQuery) apply(entries []logging.LogEntry) []logging.LogEntry {
	entries = logging.FilterLogs(entries, q.filter)
	if q.grep == nil {
		return entries
	}
	var out []logging.LogEntry
	for _, e := range entries {
		if q.grep.MatchString(searchText(e)) {
			out = append(out, e)
		}
	}
	return out
}

func searchText(e logging.LogEntry) string {
	text := e.Message + " " + e.View + " " + e.ReportID
	for _, v := range e.Attrs {
		text += " " + fmt.Sprintf("%v", v)
	}
	return text
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	dir := cfg.Paths.ResolveStateDir()
	out := cmd.OutOrStdout()

	q, err := parseLogQuery(logsLevel, logsSince, logsGrep, logsView, time.Now())
	if err != nil {
		return err
	}

	if logsFollow {
		return followLogs(out, filepath.Join(dir, logging.FileName), q)
	}

	entries, err := logging.AggregateLogs(dir)
	if err != nil {
		fmt.Fprintf(out, "No logs found in %s\n", dir)
		return nil
	}
	entries = q.apply(entries)

	// Apply tail limit
	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}

	if logsFormat != "pretty" {
		return logging.ExportLogEntries(out, entries, logsFormat)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No matching log entries found.")
		return nil
	}
	for _, entry := range entries {
		fmt.Fprintln(out, formatLogEntry(entry))
	}
	return nil
}

// followLogs implements tail -f behavior for the log file
func followLogs(out io.Writer, logPath string, q logQuery) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	// Seek to end of file
	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	fmt.Fprintf(out, "Following logs... (Ctrl+C to stop)\n\n")

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// No new data, wait briefly and try again
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return fmt.Errorf("error reading log file: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		entry, err := logging.ParseLogEntry(line)
		if err != nil {
			fmt.Fprintln(out, line)
			continue
		}
		if len(q.apply([]logging.LogEntry{entry})) == 0 {
			continue
		}
		fmt.Fprintln(out, formatLogEntry(entry))
	}
}
