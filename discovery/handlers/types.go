package handlers

// RegisterRequest is the body of POST /discovery/register.
type RegisterRequest struct {
	ServiceType string `json:"serviceType"`
	ServiceURL  string `json:"serviceUrl"`
}

// ServicesResponse is the body of GET /discovery/services: service type → urls in registration order.
type ServicesResponse map[string][]string
