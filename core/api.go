package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gorilla/mux"
)

var (
	apis   = make(map[string]API)
	apisMu sync.RWMutex
)

type API interface {
	Name() string
	Configure(router *mux.Router) error
}

func RegisterAPI(id string, api API) {
	apisMu.Lock()
	defer apisMu.Unlock()

	if _, ok := apis[id]; ok {
		panic(fmt.Sprintf("api already registered: %s", id))
	}

	apis[id] = api
}

func GetAPI(id string) API {
	apisMu.RLock()
	defer apisMu.RUnlock()

	api, ok := apis[id]

	if !ok {
		return nil
	}

	return api
}

func GetAPIs() map[string]API {
	apisMu.RLock()
	defer apisMu.RUnlock()

	return apis
}

func GetAPIList() []API {
	apisMu.RLock()
	defer apisMu.RUnlock()

	keys := make([]string, 0, len(apis))
	for k := range apis {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	list := make([]API, 0, len(keys))
	for _, k := range keys {
		list = append(list, apis[k])
	}

	return list
}
