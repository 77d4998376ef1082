package session

import "github.com/KirkDiggler/chapterplate/internal/models"

// Viewer is anything that knows the logged in user. *Store implements it.
type Viewer interface {
	User() *models.User
}

const (
	ErrNotLoggedIn SessionError = "you need to log in first"
	ErrForbidden   SessionError = "you do not have permission to do that"
)

// RequireUser returns the viewer's user or ErrNotLoggedIn
func RequireUser(v Viewer) (*models.User, error) {
	if v == nil {
		return nil, ErrNotLoggedIn
	}
	u := v.User()
	if u == nil {
		return nil, ErrNotLoggedIn
	}
	return u, nil
}

// RequireStaff allows admins and owners
func RequireStaff(v Viewer) (*models.User, error) {
	u, err := RequireUser(v)
	if err != nil {
		return nil, err
	}
	if !u.IsStaff() {
		return nil, ErrForbidden
	}
	return u, nil
}

// RequireOwner allows owners only
func RequireOwner(v Viewer) (*models.User, error) {
	u, err := RequireUser(v)
	if err != nil {
		return nil, err
	}
	if !u.IsOwner {
		return nil, ErrForbidden
	}
	return u, nil
}

// StaticViewer is a Viewer with a fixed user, for tools and tests
type StaticViewer struct {
	U *models.User
}

func (v StaticViewer) User() *models.User {
	return v.U
}
