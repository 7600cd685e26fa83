package commands

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hanoivibes/jobport/api"
	"github.com/hanoivibes/jobport/config"
	"github.com/hanoivibes/jobport/display"
	"github.com/hanoivibes/jobport/errors"
	"github.com/hanoivibes/jobport/logger"
	"github.com/hanoivibes/jobport/notify"
	"github.com/hanoivibes/jobport/session"
)

// NotificationsCmd lists, reads, and watches notifications
var NotificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List, read, and watch notifications",
	Long: `Notifications announce new postings from companies you follow.

list shows the stored notifications, read marks one as viewed, and watch
holds a live connection and prints notifications as they arrive.

Examples:
  jobport notifications list
  jobport notifications read 12
  jobport notifications watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := pageQueryFromFlags(cmd)
		if err != nil {
			return err
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		notifications, err := client.Notifications(cmd.Context(), query)
		if err != nil {
			return err
		}
		unread, err := client.UnreadNotificationCount(cmd.Context())
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(map[string]any{
				"notifications": notifications,
				"unread":        unread,
			})
		}

		if len(notifications.Data) == 0 {
			pterm.Info.Println("No notifications")
			return nil
		}
		for _, notification := range notifications.Data {
			printNotificationLine(notification)
		}
		pterm.Info.Printf("%d of %d notifications, %d unread\n",
			len(notifications.Data), notifications.Total, unread)
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification as viewed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.MarkNotificationViewed(cmd.Context(), id); err != nil {
			return err
		}

		pterm.Success.Printf("Notification %s marked as viewed\n", idRef(id))
		return nil
	},
}

var notificationsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream notifications until interrupted",
	Long: `Hold a live connection to the portal and print each notification as it
arrives. The connection retries with a fixed delay when it drops.

Configuration changes are picked up without restarting: editing the user
config file reconnects with the new settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}

		store, err := session.Open(cfg.Session.Path)
		if err != nil {
			return errors.Wrap(err, "failed to open session store")
		}
		defer store.Close()

		client, err := api.New(cfg, store)
		if err != nil {
			return err
		}

		profile, err := client.CachedProfile()
		if err != nil || profile == nil {
			return errors.WithHint(errors.ErrSessionExpired,
				"run `jobport login` to sign in first")
		}
		if !canWatchNotifications(profile.Role) {
			return errors.Newf("notifications are delivered to job-seeker accounts only (signed in as %s)", profile.Role)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		manager, err := notify.NewManager(cfg)
		if err != nil {
			return err
		}

		onEvent := func(event notify.Event) {
			pterm.Printf("%s %s\n", pterm.LightGreen("●"), string(event.Payload))
			// The payload is only a wake-up signal, re-fetch the count
			if unread, err := client.UnreadNotificationCount(ctx); err == nil {
				pterm.Info.Printf("%d unread\n", unread)
			}
		}
		if err := manager.Connect(ctx, profile.ID, onEvent); err != nil {
			return err
		}

		live := &watchSession{}
		live.swap(manager)
		defer live.stop()

		// Reconnect with fresh settings when the user config changes
		watcher, err := config.NewWatcher(config.UserConfigPath())
		if err == nil {
			watcher.OnReload(func(reloaded *config.Config) error {
				logger.Infow("Configuration reloaded, reconnecting",
					"base_url", reloaded.Server.BaseURL)
				next, err := notify.NewManager(reloaded)
				if err != nil {
					return err
				}
				if err := next.Connect(ctx, profile.ID, onEvent); err != nil {
					return err
				}
				live.swap(next)
				return nil
			})
			watcher.Start()
			defer watcher.Stop()
		}

		pterm.Info.Printf("Watching notifications for %s (Ctrl+C to stop)\n", profile.Username)
		<-ctx.Done()

		pterm.Info.Println("\nShutting down")
		return nil
	},
}

// canWatchNotifications reports whether an account role receives push
// notifications. Only job seekers follow companies, so the backend keeps
// topics for the USER role alone.
func canWatchNotifications(role api.Role) bool {
	return role == api.RoleUser
}

// watchSession holds the live connection manager so the reload callback and
// the shutdown path tear it down under one lock
type watchSession struct {
	mu      sync.Mutex
	manager *notify.Manager
}

// swap disconnects the previous manager and installs the replacement
func (s *watchSession) swap(next *notify.Manager) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.manager != nil {
		s.manager.Disconnect()
	}
	s.manager = next
}

// stop disconnects the current manager. Safe to call more than once.
func (s *watchSession) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.manager != nil {
		s.manager.Disconnect()
		s.manager = nil
	}
}

func printNotificationLine(notification api.Notification) {
	marker := pterm.LightGreen("●")
	if notification.Viewed {
		marker = pterm.Gray("○")
	}
	pterm.Printf("  %s %s %s %s\n",
		marker,
		pterm.LightCyan(idRef(notification.ID)),
		notification.Message,
		pterm.Gray(notification.CreatedAt))
}

func init() {
	addPagingFlags(notificationsListCmd)

	NotificationsCmd.AddCommand(notificationsListCmd)
	NotificationsCmd.AddCommand(notificationsReadCmd)
	NotificationsCmd.AddCommand(notificationsWatchCmd)
}
