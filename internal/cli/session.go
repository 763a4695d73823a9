package cli

import (
	"context"
	"fmt"

	"github.com/example/civictrack/internal/config"
	"github.com/example/civictrack/internal/ctxutil"
	"github.com/example/civictrack/internal/db"
)

// loadSession reads the persisted login session, nil when logged out.
func loadSession() (*config.Session, error) {
	dir, err := db.GetDataDir()
	if err != nil {
		return nil, err
	}
	return config.LoadSession(dir)
}

// requireSession loads the session or fails with a login hint.
func requireSession() (*config.Session, error) {
	session, err := loadSession()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("not logged in (run 'civictrack login')")
	}
	return session, nil
}

// requireRole loads the session and checks the caller holds the given role.
func requireRole(role string) (*config.Session, error) {
	session, err := requireSession()
	if err != nil {
		return nil, err
	}
	if session.Role != role {
		return nil, fmt.Errorf("this command requires the %s role (logged in as %s)", role, session.Role)
	}
	return session, nil
}

// sessionContext attaches the logged-in actor to the request context.
func sessionContext(session *config.Session) context.Context {
	return ctxutil.WithActor(context.Background(), session.UserID, session.Role)
}
