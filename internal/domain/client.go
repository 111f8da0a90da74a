package domain

// Client is the billed party as entered on the invoice form
type Client struct {
	Name    string
	Address string
	Contact string
}
