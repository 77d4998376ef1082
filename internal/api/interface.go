package api

//go:generate mockgen -package=mocks -destination=mocks/mock_requester.go github.com/KirkDiggler/chapterplate/internal/api Requester,Authenticator

import "context"

// Requester issues a single call against the meal API. out receives the
// decoded JSON body and may be nil.
type Requester interface {
	Do(ctx context.Context, req *Request, out any) error
}

// Authenticator supplies the bearer token for a principal and is told when
// the server rejects it
type Authenticator interface {
	// Token returns the persisted token, or "" when logged out
	Token(ctx context.Context) (string, error)

	// Invalidate is called after a 401 on an authenticated request
	Invalidate(ctx context.Context)
}
