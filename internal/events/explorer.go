// Package events holds the view models of the explore list and the event
// detail screen.
package events

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/joshua-takyi/grooviti/internal/api"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/screen"
)

type Lister interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
}

// ListView is what the explore screen renders.
type ListView struct {
	Loading bool
	Err     error
	Message string
	Query   string
	Events  []models.Event
}

type Explorer struct {
	src    Lister
	logger *slog.Logger
	life   screen.Lifetime

	mu      sync.Mutex
	all     []models.Event
	query   string
	loading bool
	err     error
}

func NewExplorer(src Lister, logger *slog.Logger) *Explorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Explorer{src: src, logger: logger}
}

// Load fetches the list and replaces whatever the screen showed before. A
// response that arrives after a newer Load or after Close is dropped and
// screen.ErrStale is returned.
func (e *Explorer) Load(ctx context.Context) error {
	ticket := e.life.Begin()

	e.mu.Lock()
	e.loading = true
	e.mu.Unlock()

	list, err := e.src.ListEvents(ctx)
	if applyErr := ticket.Apply(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.loading = false
		e.err = err
		if err != nil {
			e.all = nil
			return
		}
		e.all = SortForDisplay(list)
	}); applyErr != nil {
		e.logger.Debug("dropped event list response", "error", applyErr)
		return applyErr
	}
	if err != nil {
		e.logger.Warn("failed to load events", "error", err)
	}
	return err
}

// Search keeps the loaded list and narrows what is shown.
func (e *Explorer) Search(q string) ListView {
	e.mu.Lock()
	e.query = q
	e.mu.Unlock()
	return e.View()
}

func (e *Explorer) View() ListView {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := ListView{Loading: e.loading, Err: e.err, Query: e.query}
	if e.err != nil {
		v.Message = api.Message(e.err)
		return v
	}
	v.Events = Filter(e.all, e.query)
	return v
}

func (e *Explorer) Close() {
	e.life.Close()
}

// SortForDisplay returns a copy with bookable events first and, within each
// group, later dates first.
func SortForDisplay(list []models.Event) []models.Event {
	out := make([]models.Event, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := out[i].AvailableTickets() > 0, out[j].AvailableTickets() > 0
		if ai != aj {
			return ai
		}
		return out[i].DateTime.After(out[j].DateTime)
	})
	return out
}

// Filter matches q against event names, ignoring case. A blank query keeps
// every event.
func Filter(list []models.Event, q string) []models.Event {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		out := make([]models.Event, len(list))
		copy(out, list)
		return out
	}
	out := []models.Event{}
	for _, ev := range list {
		if strings.Contains(strings.ToLower(ev.Name), q) {
			out = append(out, ev)
		}
	}
	return out
}
