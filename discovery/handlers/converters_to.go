package handlers

// toServicesResponse converts the store map to the API response. Nil lists become empty JSON arrays.
func toServicesResponse(services map[string][]string) ServicesResponse {
	out := make(ServicesResponse, len(services))
	for t, urls := range services {
		if urls == nil {
			urls = []string{}
		}
		out[t] = urls
	}
	return out
}
