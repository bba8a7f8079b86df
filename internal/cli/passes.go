package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
	"github.com/iss-spotter/iss-spotter/internal/pkg/config"
	"github.com/iss-spotter/iss-spotter/pkg/logger"
)

var (
	errCoordinatePair = errors.New("--lat and --lon must be given together")
	errIPWithCoords   = errors.New("--ip cannot be combined with --lat/--lon")
)

func newPassesCmd() *cobra.Command {
	var (
		ip       string
		lat, lon float64
	)

	cmd := &cobra.Command{
		Use:   "passes",
		Short: "Print the next ISS passes once and exit",
		Long: `Without flags the public IP of this machine is resolved first.
--ip skips that step; --lat and --lon skip geolocation as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hasLat, hasLon := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lon")
			if hasLat != hasLon {
				return errCoordinatePair
			}
			if hasLat && cmd.Flags().Changed("ip") {
				return errIPWithCoords
			}

			loadDotEnv()
			cfg, err := config.LoadFrom(cmd.Context(), lookuper())
			if err != nil {
				return err
			}
			log := logger.New(loggerOptions(cfg))

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a, err := newApp(ctx, cfg, log, appOptions{})
			if err != nil {
				return err
			}
			defer a.close()

			var passes domain.PassList
			switch {
			case hasLat:
				passes, err = a.flyover.PassesAt(ctx, domain.Coordinates{Latitude: lat, Longitude: lon})
			case ip != "":
				passes, err = a.flyover.PassesForIP(ctx, domain.IPAddress(ip))
			default:
				passes, err = a.flyover.NextPasses(ctx)
			}
			if err != nil {
				return err
			}

			printPasses(cmd.OutOrStdout(), passes)
			return nil
		},
	}

	cmd.Flags().StringVar(&ip, "ip", "", "look up passes for this IP instead of the machine's own")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude in degrees")

	return cmd
}

func printPasses(w io.Writer, passes domain.PassList) {
	if len(passes) == 0 {
		fmt.Fprintln(w, "No upcoming passes.")
		return
	}
	for _, p := range passes {
		fmt.Fprintf(w, "Next pass at %s for %d seconds!\n", p.RisesAt().Format(time.RFC1123), p.Duration)
	}
}
