package services

import (
	"time"

	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultEvents is the catalogue the dev backend starts with.
func DefaultEvents(now time.Time) []models.Event {
	return []models.Event{
		{
			Name:         "Neon Music Fest",
			Description:  "Experience a night of electrifying music and neon vibes. Top DJs, live acts, and dance floors await!",
			Category:     "Music",
			Price:        decimal.NewFromInt(999),
			TotalTickets: 500,
			TicketsSold:  120,
			CoverImage:   models.CoverImage{URL: "https://images.grooviti.dev/neon.jpg"},
			Location: models.Location{
				City: "Mumbai", State: "Maharashtra", Country: "India",
				Latitude: 19.076, Longitude: 72.8777, Address: "NSCI Dome, Worli",
			},
			DateTime: now.Add(14 * 24 * time.Hour),
		},
		{
			Name:         "Capital EDM Festival",
			Description:  "Join the capital's biggest EDM festival! Dance to the beats of world-class DJs and enjoy great food, fun, and friends.",
			Category:     "Music",
			Price:        decimal.NewFromInt(1499),
			TotalTickets: 1000,
			TicketsSold:  1000,
			CoverImage:   models.CoverImage{URL: "https://images.grooviti.dev/edm.jpg"},
			Location: models.Location{
				City: "New Delhi", Country: "India",
				Latitude: 28.6139, Longitude: 77.209, Address: "Jawaharlal Nehru Stadium",
			},
			DateTime: now.Add(30 * 24 * time.Hour),
		},
		{
			Name:         "Startup Mixer",
			Description:  "An evening of founders, operators and investors.",
			Category:     "Networking",
			Price:        decimal.Zero,
			TotalTickets: 80,
			TicketsSold:  12,
			Location: models.Location{
				City: "Bengaluru", State: "Karnataka", Country: "India",
				Latitude: 12.9716, Longitude: 77.5946,
			},
			DateTime: now.Add(7 * 24 * time.Hour),
		},
	}
}
