package common

// Collection keys of the local key-value store. The prefix keeps ticketapp
// data apart from anything else sharing the same store.
const (
	AccountsKey = "ticketapp_users"
	SessionKey  = "ticketapp_session"
	TicketsKey  = "ticketapp_tickets"
)

// LoginPath is where unauthenticated navigation is redirected.
const LoginPath = "/auth/login"
