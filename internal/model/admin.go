package model

import "time"

// Admin is one organization administrator as returned by the dashboard.
type Admin struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Email                string         `json:"email"`
	AuthenticationMethod string         `json:"authenticationMethod"`
	OrgAccess            string         `json:"orgAccess"`
	AccountStatus        string         `json:"accountStatus"`
	TwoFactorAuthEnabled bool           `json:"twoFactorAuthEnabled"`
	HasAPIKey            bool           `json:"hasApiKey"`
	LastActive           *time.Time     `json:"lastActive"`
	Tags                 []AdminTag     `json:"tags"`
	Networks             []AdminNetwork `json:"networks"`
}

// AdminTag scopes an administrator to a device tag.
type AdminTag struct {
	Tag    string `json:"tag"`
	Access string `json:"access"`
}

// AdminNetwork scopes an administrator to a single network.
type AdminNetwork struct {
	ID     string `json:"id"`
	Access string `json:"access"`
}

// AdminNames builds the id → display name map used to enrich request records.
func AdminNames(admins []Admin) map[string]string {
	names := make(map[string]string, len(admins))
	for _, a := range admins {
		names[a.ID] = a.Name
	}
	return names
}

// UnknownAdmin is the placeholder substituted when a record's administrator id
// is not in the organization's admin list (deleted or external accounts).
func UnknownAdmin(id string) string {
	return "unknown (" + id + ")"
}
