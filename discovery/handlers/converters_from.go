package handlers

import (
	"net/url"
	"strings"

	"github.com/denis-svg/Crash-Game/discovery/domain"
	"github.com/denis-svg/Crash-Game/discovery/service"
)

// fromRegisterRequest converts RegisterRequest to domain.Registration.
// Returns service.BadParameterError on validation failure.
func fromRegisterRequest(req RegisterRequest) (domain.Registration, error) {
	return toRegistration(req.ServiceType, req.ServiceURL)
}

// fromDeregisterParams converts the deregister path parameters to domain.Registration.
func fromDeregisterParams(serviceType, serviceURL string) (domain.Registration, error) {
	return toRegistration(serviceType, serviceURL)
}

func toRegistration(serviceType, serviceURL string) (domain.Registration, error) {
	serviceType = strings.TrimSpace(serviceType)
	serviceURL = strings.TrimSpace(serviceURL)
	if serviceType == "" {
		return domain.Registration{}, service.NewBadParameterError("serviceType is required", nil)
	}
	if strings.ContainsAny(serviceType, "/ ") {
		return domain.Registration{}, service.NewBadParameterError("serviceType must not contain '/' or spaces", nil)
	}
	if serviceURL == "" {
		return domain.Registration{}, service.NewBadParameterError("serviceUrl is required", nil)
	}
	u, err := url.Parse(serviceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Registration{}, service.NewBadParameterError("serviceUrl must be an absolute http(s) URL", err)
	}
	return domain.Registration{ServiceType: serviceType, ServiceURL: serviceURL}, nil
}

// pathParam undoes percent-encoding left in a path parameter.
func pathParam(raw string) (string, error) {
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", service.NewBadParameterError("invalid path parameter", err)
	}
	return v, nil
}
