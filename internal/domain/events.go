package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryStarted   EventType = "QueryStarted"
	EventQueryCompleted EventType = "QueryCompleted"
	EventQueryFailed    EventType = "QueryFailed"
	EventPageFetched    EventType = "PageFetched"
	EventItemSelected   EventType = "ItemSelected"
	EventSearchApplied  EventType = "SearchApplied"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryStartedEvent is emitted when a query is sent to the endpoint
type QueryStartedEvent struct {
	Operation string
	RequestID string
	FromCache bool
}

func (e QueryStartedEvent) Type() EventType { return EventQueryStarted }

// QueryCompletedEvent is emitted when a query result has been committed
type QueryCompletedEvent struct {
	Operation string
	RequestID string
	FromCache bool
}

func (e QueryCompletedEvent) Type() EventType { return EventQueryCompleted }

// QueryFailedEvent is emitted when a query ends in an error
type QueryFailedEvent struct {
	Operation string
	RequestID string
	Err       error
}

func (e QueryFailedEvent) Type() EventType { return EventQueryFailed }

// PageFetchedEvent is emitted when an incremental page has been merged
type PageFetchedEvent struct {
	Operation string
	RequestID string
}

func (e PageFetchedEvent) Type() EventType { return EventPageFetched }

// ItemSelectedEvent is emitted when the user picks an item from the dropdown
type ItemSelectedEvent struct {
	Key   string
	Label string
}

func (e ItemSelectedEvent) Type() EventType { return EventItemSelected }

// SearchAppliedEvent is emitted when a search term takes effect
type SearchAppliedEvent struct {
	Term string
}

func (e SearchAppliedEvent) Type() EventType { return EventSearchApplied }

// ConfigLoadedEvent is emitted when configuration has been loaded
type ConfigLoadedEvent struct {
	Endpoint string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration has been saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
