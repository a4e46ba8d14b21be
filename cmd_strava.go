package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"athlete-monitor/internal/auth"
	"athlete-monitor/internal/service"
	"athlete-monitor/internal/store"
	"athlete-monitor/internal/strava"
)

func newStravaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strava",
		Short: "Import rated activities from Strava",
	}
	cmd.AddCommand(newStravaLoginCmd())
	cmd.AddCommand(newStravaSyncCmd())
	cmd.AddCommand(newStravaLinkCmd())
	return cmd
}

func newStravaLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link",
		Short: "Send future Strava imports to the selected athlete",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			athlete, err := e.athlete()
			if err != nil {
				return err
			}
			if err := e.db.LinkAthlete(athlete.ID); err != nil {
				if errors.Is(err, store.ErrNoAuth) {
					return errors.New("not connected to Strava, run 'athlete-monitor strava login' first")
				}
				return err
			}
			fmt.Printf("Strava imports now go to %s\n", athlete.Name)
			return nil
		},
	}
}

func newStravaLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Connect a Strava account and link it to the athlete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.cfg.ValidateStrava(); err != nil {
				return err
			}
			athlete, err := e.athlete()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			result, err := auth.Authenticate(ctx, e.oauthConfig(), os.Stdout)
			if err != nil {
				return err
			}
			err = e.db.SaveAuth(&store.Auth{
				StravaAthleteID: result.StravaAthleteID,
				AthleteID:       &athlete.ID,
				AccessToken:     result.Token.AccessToken,
				RefreshToken:    result.Token.RefreshToken,
				ExpiresAt:       result.Token.Expiry,
			})
			if err != nil {
				return fmt.Errorf("saving tokens: %w", err)
			}
			fmt.Printf("Connected Strava athlete %d to %s\n", result.StravaAthleteID, athlete.Name)
			return nil
		},
	}
}

func newStravaSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Import activities rated for perceived exertion since the last sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(false)
			if err != nil {
				return err
			}
			defer e.Close()

			syncer, athleteID, err := e.stravaSync()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			progress := make(chan service.SyncProgress)
			done := make(chan struct{})
			go func() {
				defer close(done)
				for p := range progress {
					switch {
					case p.Error != nil:
						fmt.Fprintf(os.Stderr, "  %s: %v\n", p.CurrentActivity, p.Error)
					case p.Phase == service.PhaseImporting && p.Total > 0:
						fmt.Printf("\r  %d/%d activities", p.Completed, p.Total)
					}
				}
			}()

			result, err := syncer.SyncStrava(ctx, athleteID, progress)
			<-done
			if err != nil {
				return err
			}
			fmt.Printf("\nFetched %s, imported %s, already stored %s, skipped %s without RPE\n",
				humanize.Comma(int64(result.Fetched)),
				humanize.Comma(int64(result.Imported)),
				humanize.Comma(int64(result.AlreadyStored)),
				humanize.Comma(int64(result.SkippedNoRPE)))
			if result.SkippedNoRPE > 0 {
				fmt.Println("Rate those activities' perceived exertion on Strava and sync again.")
			}
			return result.Err()
		},
	}
}

func (e *env) oauthConfig() *oauth2.Config {
	return auth.NewOAuthConfig(auth.Config{
		ClientID:     e.cfg.Strava.ClientID,
		ClientSecret: e.cfg.Strava.ClientSecret,
	})
}

// stravaSync builds a sync service from the stored tokens. Imports go to
// the athlete linked at login unless --athlete overrides it.
func (e *env) stravaSync() (*service.SyncService, string, error) {
	if err := e.cfg.ValidateStrava(); err != nil {
		return nil, "", err
	}
	stored, err := e.db.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		return nil, "", errors.New("not connected to Strava, run 'athlete-monitor strava login' first")
	}
	if err != nil {
		return nil, "", err
	}

	var athleteID string
	if athleteRef == "" && stored.AthleteID != nil {
		athleteID = *stored.AthleteID
	} else {
		athlete, err := e.athlete()
		if err != nil {
			return nil, "", err
		}
		athleteID = athlete.ID
	}

	client := strava.NewClient(auth.StoredTokenSource(e.oauthConfig(), e.db, stored))
	return service.NewSyncService(client, e.db, e.record), athleteID, nil
}

// dashboardSync is stravaSync for the TUI, where Strava is optional
func (e *env) dashboardSync(athleteID string) *service.SyncService {
	syncer, linked, err := e.stravaSync()
	if err != nil || linked != athleteID {
		return nil
	}
	return syncer
}

