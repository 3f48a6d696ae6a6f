package bootstrap

import (
	"context"
	"log"
	"time"

	app "github.com/mohammadpnp/bizimport/internal/application/importing"
)

// RunSessionReaper cancels idle import sessions every interval until ctx is done.
func RunSessionReaper(ctx context.Context, expire app.ExpireSessions, idleFor, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := expire.Execute(ctx, app.ExpireSessionsInput{IdleFor: idleFor})
			if err != nil {
				log.Printf("expire import sessions: %v", err)
			}
			if n > 0 {
				log.Printf("expired %d idle import sessions", n)
			}
		}
	}
}
