package domain

// Registration is one (service type, url) pair held by the discovery service.
// The same pair may be registered more than once; every copy is kept.
type Registration struct {
	ServiceType string
	ServiceURL  string
}

// NotifyAction tells the gateway whether a registration appeared or went away.
type NotifyAction string

const (
	ActionRegister   NotifyAction = "register"
	ActionDeregister NotifyAction = "deregister"
)
