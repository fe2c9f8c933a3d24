package core

import (
	"sync"

	"github.com/uplink-social/uplink/core/internal"
)

type ServiceFactory func() (Service, []ContextBuilderOption, error)

type Service interface{}

var (
	services        = make(map[string]ServiceInfo)
	servicesOrdered []ServiceInfo
	servicesMu      sync.RWMutex
)

type ServiceInfo struct {
	ID      string
	Factory ServiceFactory
	Depends []string
}

func RegisterService(service ServiceInfo) {
	if service.ID == "" {
		panic("service ID must not be empty")
	}

	if service.Factory == nil {
		panic("service factory must not be nil")
	}

	servicesMu.Lock()
	defer servicesMu.Unlock()

	if _, ok := services[service.ID]; ok {
		panic("service already registered: " + service.ID)
	}

	if len(servicesOrdered) > 0 {
		servicesOrdered = nil
	}

	services[service.ID] = service
}

func GetServiceInfo(id string) *ServiceInfo {
	servicesMu.RLock()
	defer servicesMu.RUnlock()

	svc, ok := services[id]

	if !ok {
		return nil
	}

	return &svc
}

// GetServices returns all registered services in dependency order.
func GetServices() []ServiceInfo {
	servicesMu.Lock()
	defer servicesMu.Unlock()

	if len(servicesOrdered) > 0 {
		return servicesOrdered
	}

	graph := internal.NewDependsGraph()

	for _, k := range services {
		graph.AddNode(k.ID, k.Depends...)
	}

	list, err := graph.Build()

	if err != nil {
		panic(err)
	}

	var svcList []ServiceInfo

	for _, k := range list {
		svcList = append(svcList, services[k])
	}

	servicesOrdered = svcList

	return svcList
}

func GetService[T Service](ctx Context, id string) T {
	svc := ctx.Service(id)

	if svc == nil {
		panic("service not found: " + id)
	}

	typed, ok := svc.(T)
	if !ok {
		panic("service has unexpected type: " + id)
	}

	return typed
}
