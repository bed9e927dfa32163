// Package features binds the upstream clients to the query cache: each
// feature declares its cached reads with their tags and wraps its mutations
// so the right tags are invalidated on success. Handlers in internal/api only
// ever talk to this layer.
package features

import (
	"time"

	"github.com/fsp-platform/console-bff/internal/querycache"
	"github.com/fsp-platform/console-bff/internal/upstream"
)

// Registry is the full feature set, built once at startup.
type Registry struct {
	Events        *Events
	Users         *Users
	Regions       *Regions
	Teams         *Teams
	Notifications *Notifications
	Disciplines   *Disciplines
	Protocols     *Protocols
	Applications  *Applications
}

// NewRegistry wires every feature against one shared gateway and cache.
// refTTL is the long TTL for reference data like disciplines.
func NewRegistry(cache *querycache.Cache, gw *upstream.Client, refTTL time.Duration) *Registry {
	return &Registry{
		Events:        NewEvents(cache, upstream.NewEventsClient(gw)),
		Users:         NewUsers(cache, upstream.NewAuthClient(gw)),
		Regions:       NewRegions(cache, upstream.NewRegionsClient(gw)),
		Teams:         NewTeams(cache, upstream.NewTeamsClient(gw)),
		Notifications: NewNotifications(cache, upstream.NewNotificationsClient(gw)),
		Disciplines:   NewDisciplines(cache, upstream.NewDisciplinesClient(gw), refTTL),
		Protocols:     NewProtocols(cache, upstream.NewProtocolsClient(gw)),
		Applications:  NewApplications(cache, upstream.NewApplicationsClient(gw)),
	}
}
