package domain

import "time"

// Client is a customer owned by exactly one seller.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Surname   string    `json:"apellido"`
	Company   string    `json:"empresa"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefono,omitempty"`
	SellerID  string    `json:"vendedor"`
	CreatedAt time.Time `json:"creado"`
}

// ClientPatch lists the client fields an update may change. Nil fields keep
// their stored value. The owning seller is not patchable.
type ClientPatch struct {
	Name    *string
	Surname *string
	Company *string
	Email   *string
	Phone   *string
}

// Apply copies every set field of p onto c.
func (p ClientPatch) Apply(c *Client) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Surname != nil {
		c.Surname = *p.Surname
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
}
