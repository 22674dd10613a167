package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"rentauto-client/internal/barcode"
	"rentauto-client/internal/config"
	"rentauto-client/internal/coordinator"
	"rentauto-client/internal/domain"
	"rentauto-client/internal/gateway"
	"rentauto-client/internal/logger"
	"rentauto-client/internal/session"
	"rentauto-client/internal/tracker"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: rentctl [-config path] <command> [args]

commands:
  login <email> <password>
  admin-login <username> <password>
  register <name> <email> <phone> <address> <password>
  logout
  vehicles
  rent <vehicle-id> <start YYYY-MM-DD> <end YYYY-MM-DD> <payment-method>
  return <barcode> [additional-fee]
  records
  payments
  history
  profile
  watch`)
	os.Exit(2)
}

type app struct {
	cfg     *config.Config
	coord   *coordinator.Coordinator
	session *session.Manager
	store   *session.Store
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Debug("Configuration loaded", "backend", cfg.Backend.BaseURL, "session_path", cfg.Session.Path)

	store, err := session.Open(cfg.Session.Path)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer store.Close()

	api := gateway.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)
	codec := barcode.New(cfg.Barcode.Width, cfg.Barcode.Height)
	coord := coordinator.New(api, tracker.New(), codec, store)

	a := &app{
		cfg:     cfg,
		coord:   coord,
		session: session.NewManager(api, store),
		store:   store,
	}

	ctx := context.Background()
	if err := a.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		// Every failure degrades to a message.
		fmt.Fprintln(os.Stderr, domain.UserMessage(err))
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		if len(args) != 2 {
			usage()
		}
		res, err := a.session.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s (user %d)\n", res.Name, res.UserID)
		return nil

	case "admin-login":
		if len(args) != 2 {
			usage()
		}
		res, err := a.session.AdminLogin(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as admin %s (id %d)\n", res.Username, res.AdminID)
		return nil

	case "register":
		if len(args) != 5 {
			usage()
		}
		res, err := a.session.RegisterUser(ctx, gateway.RegisterUserRequest{
			Name: args[0], Email: args[1], Phone: args[2], Address: args[3], Password: args[4],
		})
		if err != nil {
			return err
		}
		fmt.Printf("Registered user %d, please log in\n", res.UserID)
		return nil

	case "logout":
		if err := a.session.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil

	case "vehicles":
		vehicles, err := a.coord.RefreshVehicles(ctx)
		if err != nil {
			return err
		}
		for _, v := range vehicles {
			fmt.Printf("%4d  %-12s %-14s %d  %8.2f/day  %s\n",
				v.ID, v.Brand, v.Model, v.Year, v.RentPrice, v.AvailabilityStatus)
		}
		return nil

	case "rent":
		return a.rent(ctx, args)

	case "return":
		if len(args) < 1 || len(args) > 2 {
			usage()
		}
		fee := ""
		if len(args) == 2 {
			fee = args[1]
		}
		msg, err := a.coord.ReturnVehicle(ctx, args[0], fee)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil

	case "records":
		records, err := a.coord.RentalHistory(ctx)
		if err != nil {
			return err
		}
		for _, r := range records {
			fmt.Printf("%-16s %-10s %-12s %s -> %s  %8s  %s/%s\n",
				r.UserName, r.Brand, r.Model, r.StartDate, r.EndDate, r.TotalCost, r.PaymentStatus, r.CarStatus)
		}
		return nil

	case "payments":
		payments, err := a.coord.PaymentHistory(ctx)
		if err != nil {
			return err
		}
		for _, p := range payments {
			fmt.Printf("#%d rental %d  %8.2f (%s late fee %.2f) %s %s\n",
				p.PaymentID, p.RentalID, p.AmountPaid, p.PaymentMethod, p.LateFee, p.PaymentDate, p.PayStatus)
		}
		return nil

	case "history":
		sess, err := a.session.Current()
		if err != nil {
			return err
		}
		if !sess.LoggedIn {
			return domain.NewValidationFailure("Not logged in.")
		}
		entries, err := a.coord.UserStatement(ctx, sess.UserID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("rental %d  %s %s  %s -> %s  %8.2f  late fee %.2f  %s\n",
				e.RentalID, e.VehicleBrand, e.VehicleModel, e.StartDate, e.EndDate, e.TotalCost, e.LateFee, e.CarStatus)
		}
		return nil

	case "profile":
		profile, err := a.session.Profile(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> %s\n%s\nstatus: %s, documents: %d\n",
			profile.Name, profile.Email, profile.Phone, profile.Address, profile.Status, len(profile.Documents))
		return nil

	case "watch":
		return a.watch(ctx)
	}

	usage()
	return nil
}

func (a *app) rent(ctx context.Context, args []string) error {
	if len(args) != 4 {
		usage()
	}
	sess, err := a.session.Current()
	if err != nil {
		return err
	}
	if !sess.LoggedIn {
		return domain.NewValidationFailure("Not logged in.")
	}
	vehicleID := 0
	if _, err := fmt.Sscanf(args[0], "%d", &vehicleID); err != nil {
		return domain.NewValidationFailure("Invalid vehicle id.")
	}

	ticket, err := a.coord.CreateRental(ctx, sess.UserID, vehicleID, args[1], args[2], domain.PaymentMethod(args[3]))
	if ticket == nil {
		return err
	}

	fmt.Printf("Rental %d confirmed: %d day(s), total %.2f (%s)\nBarcode: %s\n",
		ticket.RentalID, ticket.TotalDays, ticket.TotalCost, ticket.PaymentMethod, ticket.BarcodeToken)
	if err != nil {
		// The rental stands; only the rendered image is missing.
		fmt.Fprintln(os.Stderr, "Barcode image unavailable: "+domain.UserMessage(err))
		return nil
	}

	if a.cfg.Barcode.OutputDir != "" {
		if err := os.MkdirAll(a.cfg.Barcode.OutputDir, 0755); err != nil {
			return err
		}
		path := filepath.Join(a.cfg.Barcode.OutputDir, fmt.Sprintf("rental-%d.png", ticket.RentalID))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := png.Encode(f, ticket.Barcode); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Barcode image written to %s\n", path)
	}
	return nil
}

// watch refreshes the availability snapshot on the configured schedule and
// prints changes until interrupted.
func (a *app) watch(ctx context.Context) error {
	if _, err := a.coord.RefreshVehicles(ctx); err != nil {
		return err
	}
	logger.Info("Watching fleet availability", "schedule", a.cfg.Refresh.VehiclesCron)

	c := cron.New()
	_, err := c.AddFunc(a.cfg.Refresh.VehiclesCron, func() {
		before := snapshotStatuses(a.coord.Vehicles())
		vehicles, err := a.coord.RefreshVehicles(ctx)
		if err != nil {
			logger.Error("Availability refresh failed", "error", err)
			return
		}
		for _, v := range vehicles {
			if prev, ok := before[v.ID]; ok && prev != v.AvailabilityStatus {
				fmt.Printf("vehicle %d (%s %s): %s -> %s\n", v.ID, v.Brand, v.Model, prev, v.AvailabilityStatus)
			}
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", a.cfg.Refresh.VehiclesCron, err)
	}
	c.Start()
	defer c.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	return nil
}

func snapshotStatuses(vehicles []domain.Vehicle) map[int]domain.AvailabilityStatus {
	statuses := make(map[int]domain.AvailabilityStatus, len(vehicles))
	for _, v := range vehicles {
		statuses[v.ID] = v.AvailabilityStatus
	}
	return statuses
}
