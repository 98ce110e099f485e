package entities

import "time"

// Role tags a user. Everything role-specific (storage collection, allowed
// actions, profile payload) is derived from the tag.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStore  Role = "store"
	RoleClient Role = "client"
)

type Capability string

const (
	CapabilityComputeFinancing  Capability = "financing:compute"
	CapabilityViewProposals     Capability = "proposals:view"
	CapabilityCreateProposal    Capability = "proposals:create"
	CapabilityReviseProposal    Capability = "proposals:revise"
	CapabilityEvaluateProposal  Capability = "proposals:evaluate"
	CapabilityNegotiate         Capability = "proposals:negotiate"
	CapabilityDeleteProposal    Capability = "proposals:delete"
	CapabilityChargeDownPayment Capability = "down_payments:charge"
	CapabilityViewDownPayments  Capability = "down_payments:view"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {
		CapabilityComputeFinancing,
		CapabilityViewProposals,
		CapabilityEvaluateProposal,
		CapabilityNegotiate,
		CapabilityDeleteProposal,
		CapabilityViewDownPayments,
	},
	RoleStore: {
		CapabilityComputeFinancing,
		CapabilityViewProposals,
		CapabilityCreateProposal,
		CapabilityReviseProposal,
		CapabilityNegotiate,
		CapabilityChargeDownPayment,
		CapabilityViewDownPayments,
	},
	RoleClient: {
		CapabilityComputeFinancing,
	},
}

var roleCollections = map[Role]string{
	RoleAdmin:  "admins",
	RoleStore:  "stores",
	RoleClient: "clients",
}

func (r Role) Valid() bool {
	_, ok := roleCollections[r]
	return ok
}

// CollectionName is the table holding users of role r.
func CollectionName(r Role) string {
	return roleCollections[r]
}

func Capabilities(r Role) []Capability {
	return append([]Capability(nil), roleCapabilities[r]...)
}

func HasCapability(r Role, c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

// NegotiationAuthorFor maps the acting role onto the negotiation log author.
func NegotiationAuthorFor(r Role) (NegotiationAuthor, bool) {
	switch r {
	case RoleAdmin:
		return NegotiationAuthorFinancier, true
	case RoleStore:
		return NegotiationAuthorStore, true
	}
	return "", false
}

// Profile is the role-specific payload of a User. Only the types in this
// file implement it.
type Profile interface {
	Role() Role
	isProfile()
}

type AdminProfile struct {
	Area string `json:"area,omitempty"`
}

type StoreProfile struct {
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name"`
	City      string `json:"city,omitempty"`
}

type ClientProfile struct {
	DocumentNumber string `json:"document_number"`
	Phone          string `json:"phone,omitempty"`
}

func (AdminProfile) Role() Role  { return RoleAdmin }
func (StoreProfile) Role() Role  { return RoleStore }
func (ClientProfile) Role() Role { return RoleClient }

func (AdminProfile) isProfile()  {}
func (StoreProfile) isProfile()  {}
func (ClientProfile) isProfile() {}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Role() Role {
	if u.Profile == nil {
		return ""
	}
	return u.Profile.Role()
}
