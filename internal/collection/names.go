package collection

// Collection names are the de facto on-disk schema: one store key per entity
// type. They must stay byte-stable across versions or existing installs lose
// their data. The "@" prefix comes from the first release and is kept for
// that reason.
const (
	Books              = "@books"
	RecentBooks        = "@recent_books"
	Reviews            = "@reviews"
	Cart               = "@cart"
	Wishlist           = "@wishlist"
	Addresses          = "@addresses"
	Orders             = "@orders"
	Profiles           = "@user_profiles"
	Accounts           = "@users"
	Sessions           = "@sessions"
	RefreshTokens      = "@refresh_tokens"
	VerificationTokens = "@verification_tokens"
)
