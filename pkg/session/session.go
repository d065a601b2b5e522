// Package session persists named drawings between CLI invocations.
//
// A session holds the committed graph of one drawing as a JSON document (the
// pkg/io format) together with the revision that produced it. Running a script
// with --session loads the drawing, applies the script on top and saves the
// result:
//
//	store, err := session.NewFileStore("") // ~/.config/wiregraph/sessions/
//	sess, err := store.Get(ctx, "amp")
//	if sess != nil {
//	    g, err := sess.State()
//	    eng.Execute(txn.Import{Source: g})
//	}
//	...
//	sess, err = session.New("amp", eng.State(), eng.Revision())
//	store.Set(ctx, sess)
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/io"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

// Session is one saved drawing.
type Session struct {
	Name      string          `json:"name"`
	Revision  uuid.UUID       `json:"revision"`
	Document  json.RawMessage `json:"document"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by name.
	// Returns nil, nil if the session doesn't exist.
	Get(ctx context.Context, name string) (*Session, error)

	// Set stores a session, replacing any previous one with the same name.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, name string) error

	// List returns the stored session names in lexical order.
	List(ctx context.Context) ([]string, error)
}

var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// ValidateName checks that name is usable as a session name.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) || name == "." || name == ".." {
		return errors.New(errors.ErrCodeInvalidInput, "invalid session name %q", name)
	}
	return nil
}

// New snapshots g under name.
func New(name string, g wire.View, rev uuid.UUID) (*Session, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := io.WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		Name:      name,
		Revision:  rev,
		Document:  bytes.TrimSpace(buf.Bytes()),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// State decodes the saved graph.
func (s *Session) State() (*wire.State, error) {
	g, err := io.ReadJSON(bytes.NewReader(s.Document))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "session %s", s.Name)
	}
	return g, nil
}
