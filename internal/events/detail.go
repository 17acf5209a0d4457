package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"

	"github.com/joshua-takyi/grooviti/internal/api"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/screen"
)

type Getter interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
}

type DetailView struct {
	Loading  bool
	NotFound bool
	Err      error
	Message  string

	Event         *models.Event
	Available     int
	CanPurchase   bool
	PriceLabel    string
	ShareMessage  string
	DirectionsURL string
}

type Detail struct {
	src    Getter
	logger *slog.Logger
	life   screen.Lifetime

	mu      sync.Mutex
	event   *models.Event
	loading bool
	err     error
}

func NewDetail(src Getter, logger *slog.Logger) *Detail {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detail{src: src, logger: logger}
}

func (d *Detail) Load(ctx context.Context, id string) error {
	ticket := d.life.Begin()

	d.mu.Lock()
	d.loading = true
	d.mu.Unlock()

	ev, err := d.src.GetEvent(ctx, id)
	if applyErr := ticket.Apply(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.loading = false
		d.event, d.err = ev, err
		if err != nil {
			d.event = nil
		}
	}); applyErr != nil {
		d.logger.Debug("dropped event response", "event_id", id, "error", applyErr)
		return applyErr
	}
	return err
}

func (d *Detail) View() DetailView {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := DetailView{Loading: d.loading, Err: d.err}
	switch {
	case d.err != nil && errors.Is(d.err, api.ErrNotFound):
		v.NotFound = true
		v.Message = "Event not found"
		return v
	case d.err != nil:
		v.Message = api.Message(d.err)
		return v
	case d.event == nil:
		return v
	}

	ev := *d.event
	v.Event = &ev
	v.Available = ev.AvailableTickets()
	v.CanPurchase = v.Available > 0
	v.PriceLabel = PriceLabel(ev)
	v.ShareMessage = ShareMessage(ev)
	v.DirectionsURL = DirectionsURL(ev.Location)
	return v
}

func (d *Detail) Close() {
	d.life.Close()
}

func PriceLabel(ev models.Event) string {
	if ev.IsFree() {
		return "Free"
	}
	return "₹" + ev.Price.String()
}

func ShareMessage(ev models.Event) string {
	return fmt.Sprintf("Check out this event: %s in %s. Book now on Grooviti!", ev.Name, ev.Location.City)
}

// DirectionsURL opens a maps search centred on the venue coordinates.
func DirectionsURL(loc models.Location) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", strconv.FormatFloat(loc.Latitude, 'f', -1, 64)+","+strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	return "https://www.google.com/maps/search/?" + q.Encode()
}
