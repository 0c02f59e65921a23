package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/maryamfaizan53/weather-bot-new/internal/domain/dashboard"
	apperrors "github.com/maryamfaizan53/weather-bot-new/pkg/errors"
)

// UI drives the interactive terminal dashboard: it reads command lines,
// hands searches to the orchestrator and renders the resulting snapshots.
type UI struct {
	svc    dashboard.Service
	search *SearchInput
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
}

// NewUI wires the terminal front end.
func NewUI(svc dashboard.Service, search *SearchInput, in io.Reader, out io.Writer, logger *slog.Logger) *UI {
	return &UI{
		svc:    svc,
		search: search,
		in:     in,
		out:    out,
		logger: logger.With("component", "term.ui"),
	}
}

// Run executes the read-render loop until the input closes, /quit is typed
// or the context ends. Searches run in the background so the loop stays
// responsive; earlier cards stay visible above a new loading line.
func (u *UI) Run(ctx context.Context) error {
	lines := make(chan string)
	go u.readLines(lines)

	results := make(chan dashboard.Snapshot, 4)

	fmt.Fprintln(u.out, "WeatherWise dashboard. Type a place name, or /help for commands.")
	fmt.Fprintln(u.out, "Loading weather data...")
	go func() { results <- u.svc.Bootstrap(ctx) }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap := <-results:
			u.render(snap)
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := u.handleLine(ctx, line, results); quit {
				return nil
			}
		}
	}
}

func (u *UI) readLines(lines chan<- string) {
	scanner := bufio.NewScanner(u.in)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		u.logger.Error("input read failed", "error", err)
	}
	close(lines)
}

// handleLine routes one input line. It reports whether the loop should stop.
func (u *UI) handleLine(ctx context.Context, line string, results chan<- dashboard.Snapshot) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "/quit" || trimmed == "/exit":
		fmt.Fprintln(u.out, "Bye.")
		return true
	case trimmed == "/help":
		u.printHelp()
	case trimmed == "/state":
		u.showAgentState(ctx)
	case trimmed == "/geo":
		u.geolocate(ctx, results)
	case strings.HasPrefix(trimmed, "/units"):
		u.setUnits(ctx, strings.TrimSpace(strings.TrimPrefix(trimmed, "/units")), results)
	case strings.HasPrefix(trimmed, "/save"):
		u.saveCurrent(ctx, strings.TrimSpace(strings.TrimPrefix(trimmed, "/save")))
	case strings.HasPrefix(trimmed, "/"):
		fmt.Fprintf(u.out, "Unknown command %q. Try /help.\n", trimmed)
	default:
		u.submitSearch(ctx, line, results)
	}
	return false
}

func (u *UI) submitSearch(ctx context.Context, line string, results chan<- dashboard.Snapshot) {
	u.search.Type(line)
	query, err := u.search.Submit(u.svc.State().Loading)
	if err != nil {
		u.notice(err)
		return
	}
	if query == "" {
		return
	}
	u.dispatch(ctx, query, results)
}

func (u *UI) geolocate(ctx context.Context, results chan<- dashboard.Snapshot) {
	query, err := u.search.Geolocate(ctx, u.svc.State().Loading)
	if err != nil {
		u.notice(err)
		return
	}
	u.dispatch(ctx, query, results)
}

func (u *UI) dispatch(ctx context.Context, query string, results chan<- dashboard.Snapshot) {
	fmt.Fprintf(u.out, "Loading weather for %s...\n", query)
	go func() { results <- u.svc.Search(ctx, query) }()
}

func (u *UI) setUnits(ctx context.Context, units string, results chan<- dashboard.Snapshot) {
	if units == "" {
		fmt.Fprintln(u.out, "Usage: /units metric|imperial")
		return
	}
	ack, err := u.svc.SetUnits(ctx, units)
	if err != nil {
		u.notice(err)
		return
	}
	fmt.Fprintln(u.out, ack.Message)
	// Re-fetch so the visible numbers match the new unit system.
	if current := u.svc.State().Location; current != "" {
		u.dispatch(ctx, current, results)
	}
}

func (u *UI) saveCurrent(ctx context.Context, name string) {
	if name == "" {
		fmt.Fprintln(u.out, "Usage: /save <name>")
		return
	}
	ack, err := u.svc.SaveCurrent(ctx, name)
	if err != nil {
		u.notice(err)
		return
	}
	fmt.Fprintln(u.out, ack.Message)
}

func (u *UI) showAgentState(ctx context.Context) {
	state, err := u.svc.AgentState(ctx)
	if err != nil {
		u.notice(err)
		return
	}
	fmt.Fprint(u.out, AgentStateCard(state))
}

// render prints the snapshot: an error banner leaves earlier cards standing,
// a loading snapshot waits for the in-flight search to deliver.
func (u *UI) render(snap dashboard.Snapshot) {
	if snap.LastError != "" {
		fmt.Fprintf(u.out, "! %s\n", snap.LastError)
		return
	}
	if snap.Loading {
		return
	}
	fmt.Fprint(u.out, WeatherCard(snap.Location, snap.Weather))
	fmt.Fprint(u.out, ForecastCard(snap.Forecast))
	fmt.Fprint(u.out, AirQualityCard(snap.AirQuality))
	if !snap.UpdatedAt.IsZero() {
		fmt.Fprintf(u.out, "%s  updated %s  searches %d\n",
			snap.Location, snap.UpdatedAt.Format("15:04:05"), snap.Usage.Searches)
	}
}

func (u *UI) notice(err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		fmt.Fprintf(u.out, "! %s\n", appErr.Message)
		return
	}
	fmt.Fprintf(u.out, "! %s\n", err)
}

func (u *UI) printHelp() {
	fmt.Fprintln(u.out, "Commands:")
	fmt.Fprintln(u.out, "  <place name>     search weather for a place")
	fmt.Fprintln(u.out, "  /geo             search weather for your current position")
	fmt.Fprintln(u.out, "  /units <system>  set units (metric or imperial)")
	fmt.Fprintln(u.out, "  /save <name>     save the displayed location under a name")
	fmt.Fprintln(u.out, "  /state           show the backend agent state")
	fmt.Fprintln(u.out, "  /quit            exit")
}
