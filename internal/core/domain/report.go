package domain

// DefaultRankingLimit is the number of entries returned by the rankings when
// the caller does not ask for a specific size.
const DefaultRankingLimit = 10

// Total is the summed order total for one grouping key.
type Total struct {
	Key   string
	Total float64
}

// ClientRanking pairs a client with the total of its completed orders.
// Client is nil when the referenced client no longer exists.
type ClientRanking struct {
	Client *Client
	Total  float64
}

// SellerRanking pairs a seller with the total of its completed orders.
type SellerRanking struct {
	Seller *User
	Total  float64
}
