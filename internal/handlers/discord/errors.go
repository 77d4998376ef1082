package discord

// BotError is a custom error type for Discord surface errors
type BotError string

// Error implements the error interface
func (e BotError) Error() string {
	return string(e)
}

const (
	ErrNilConfig         BotError = "config cannot be nil"
	ErrEmptyToken        BotError = "token cannot be empty"
	ErrNilSessions       BotError = "session manager cannot be nil"
	ErrNilLocalState     BotError = "local state cannot be nil"
	ErrNilViews          BotError = "views cannot be nil"
	ErrBadCustomID       BotError = "malformed component id"
	ErrUnknownSubcommand BotError = "unknown subcommand"
	ErrUnknownComponent  BotError = "unknown component"
	ErrNoUser            BotError = "interaction has no user"
)
