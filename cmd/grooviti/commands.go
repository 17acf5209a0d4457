package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/joshua-takyi/grooviti/internal/booking"
	"github.com/joshua-takyi/grooviti/internal/container"
	"github.com/joshua-takyi/grooviti/internal/events"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/nav"
	"github.com/joshua-takyi/grooviti/internal/organizer"
)

type command func(ctx context.Context, app *container.Container, args []string, out io.Writer) error

var commands = map[string]command{
	"explore":       explore,
	"event":         eventDetail,
	"book":          book,
	"login":         login,
	"signup":        signup,
	"profile":       profile,
	"notifications": notifications,
	"logout":        logout,
	"organizer":     registerOrganizer,
}

func explore(ctx context.Context, app *container.Container, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("explore", flag.ContinueOnError)
	query := fs.String("q", "", "search by event name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	explorer := app.Explorer()
	defer explorer.Close()
	if err := explorer.Load(ctx); err != nil {
		return err
	}

	view := explorer.Search(*query)
	if len(view.Events) == 0 {
		fmt.Fprintln(out, "No events found.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCITY\tDATE\tPRICE\tLEFT")
	for _, ev := range view.Events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			ev.ID, ev.Name, ev.Location.City, ev.DateTime.Format("02 Jan 2006 15:04"), events.PriceLabel(ev), ev.AvailableTickets())
	}
	return tw.Flush()
}

func eventDetail(ctx context.Context, app *container.Container, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: grooviti event <id>")
	}

	detail := app.EventDetail()
	defer detail.Close()
	err := detail.Load(ctx, args[0])
	view := detail.View()
	if view.NotFound {
		fmt.Fprintln(out, view.Message)
		return &shownError{err: err}
	}
	if err != nil {
		return err
	}

	ev := view.Event
	fmt.Fprintf(out, "%s\n%s\n\n", ev.Name, ev.Description)
	fmt.Fprintf(out, "When:   %s\n", ev.DateTime.Format("Mon 02 Jan 2006 15:04"))
	fmt.Fprintf(out, "Where:  %s, %s\n", ev.Location.Address, ev.Location.City)
	fmt.Fprintf(out, "Price:  %s\n", view.PriceLabel)
	if view.CanPurchase {
		fmt.Fprintf(out, "Left:   %d tickets\n", view.Available)
	} else {
		fmt.Fprintln(out, "Sold out")
	}
	fmt.Fprintf(out, "Map:    %s\n", view.DirectionsURL)
	fmt.Fprintf(out, "Share:  %s\n", view.ShareMessage)
	return nil
}

func book(ctx context.Context, app *container.Container, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	eventID := fs.String("event", "", "event id")
	qty := fs.Int("qty", 1, "number of tickets")
	var p models.Purchaser
	fs.StringVar(&p.FirstName, "first", "", "first name")
	fs.StringVar(&p.LastName, "last", "", "last name")
	fs.StringVar(&p.Email, "email", "", "email")
	fs.StringVar(&p.Phone, "phone", "", "10-digit phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if route := nav.Guard(app.Session, nav.Event(*eventID)); route == nav.Login {
		fmt.Fprintln(out, "Please log in to continue: grooviti login")
		return &shownError{err: booking.ErrLoginRequired}
	}

	flow := app.BookingFlow()
	defer flow.Close()
	if err := flow.Load(ctx, *eventID); err != nil {
		if msg := flow.View().Message; msg != "" {
			fmt.Fprintln(out, msg)
			return &shownError{err: err}
		}
		return err
	}
	if err := flow.SetQuantity(*qty); err != nil {
		return err
	}
	if err := flow.SetPurchaser(p); err != nil {
		return err
	}

	v := flow.View()
	fmt.Fprintf(out, "%s x%d, total %s\n", v.Event.Name, v.Quantity, v.Total.StringFixed(2))

	outcome, err := flow.Submit(ctx)
	if outcome.Message != "" {
		fmt.Fprintln(out, outcome.Message)
	}
	if outcome.Route == nav.Login {
		fmt.Fprintln(out, "Run: grooviti login")
	}
	if err != nil {
		return &shownError{err: err}
	}
	fmt.Fprintf(out, "Booking confirmed. Order %s\n", outcome.Order.OrderID)
	return nil
}

func login(ctx context.Context, app *container.Container, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := app.Accounts.Login(ctx, *email, *password)
	if err != nil {
		fmt.Fprintln(out, res.Message)
		return &shownError{err: err}
	}
	fmt.Fprintf(out, "Welcome, %s\n", app.Session.User().Email)
	return nil
}

func signup(ctx context.Context, app *container.Container, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := app.Accounts.Signup(ctx, *name, *email, *password)
	fmt.Fprintln(out, res.Message)
	if err != nil {
		return &shownError{err: err}
	}
	return nil
}

func profile(ctx context.Context, app *container.Container, args []string, out io.Writer) error {
	view, res, err := app.Accounts.Profile(ctx)
	if res.Route == nav.Login {
		fmt.Fprintln(out, "Please log in to continue: grooviti login")
		return &shownError{err: err}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s <%s>\n", view.Name, view.Email)
	fmt.Fprintf(out, "Followers %d  Following %d  Bookings %d\n", view.Followers, view.Following, view.Bookings)
	for _, name := range view.LinkNames() {
		fmt.Fprintf(out, "%s: %s\n", name, view.Links[name])
	}
	return nil
}

func notifications(ctx context.Context, app *container.Container, args []string, out io.Writer) error {
	view, err := app.Accounts.Notifications(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d unread\n", view.Unread)
	for _, n := range view.Items {
		mark := " "
		if !n.IsRead {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %s  %s: %s\n", mark, n.CreatedAt.Format("02 Jan 15:04"), n.Title, n.Message)
	}
	return nil
}

func logout(ctx context.Context, app *container.Container, args []string, out io.Writer) error {
	if _, err := app.Accounts.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Logged out.")
	return nil
}

func registerOrganizer(ctx context.Context, app *container.Container, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("organizer", flag.ContinueOnError)
	plan := fs.String("plan", string(models.PlanBasic), "Basic, Premium or Custom")
	cycle := fs.String("cycle", string(models.Monthly), "monthly, quarterly or annual")
	var form models.OrganizerRequest
	fs.StringVar(&form.Name, "name", "", "full name")
	fs.StringVar(&form.Email, "email", "", "email")
	fs.StringVar(&form.Password, "password", "", "password")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "repeat the password")
	fs.StringVar(&form.Phone, "phone", "", "10-digit phone number")
	fs.StringVar(&form.Organization, "org", "", "organization name")
	fs.StringVar(&form.City, "city", "", "city")
	fs.StringVar(&form.State, "state", "", "state")
	fs.StringVar(&form.Website, "website", "", "website")
	fs.StringVar(&form.Bio, "bio", "", "short bio")
	if err := fs.Parse(args); err != nil {
		return err
	}

	flow := app.OrganizerFlow()
	defer flow.Close()
	if err := flow.SelectPlan(models.Plan(*plan), models.BillingCycle(*cycle)); err != nil {
		if errors.Is(err, organizer.ErrUnknownPlan) {
			fmt.Fprintln(out, "Choose a plan (Basic, Premium, Custom) and cycle (monthly, quarterly, annual).")
			return &shownError{err: err}
		}
		return err
	}
	if err := flow.SetForm(form); err != nil {
		return err
	}

	v := flow.View()
	fmt.Fprintf(out, "Plan: %s | Billing: %s\nTotal Price: %s\n", v.Plan, v.Cycle, v.Total.StringFixed(2))

	outcome, err := flow.Submit(ctx)
	if outcome.Message != "" {
		fmt.Fprintln(out, outcome.Message)
	}
	if err != nil {
		return &shownError{err: err}
	}
	fmt.Fprintln(out, "Organizer registered. Sign in with: grooviti login")
	return nil
}
