package titantrigger

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MarcGrol/titanbridge/lib/myerrors"
	"github.com/MarcGrol/titanbridge/lib/mylog"
	"github.com/MarcGrol/titanbridge/lib/mypublisher"
	"github.com/MarcGrol/titanbridge/lib/mystore"
	"github.com/MarcGrol/titanbridge/lib/mytime"
	"github.com/MarcGrol/titanbridge/lib/myuuid"
	"github.com/MarcGrol/titanbridge/services/titanevents"
)

// HookConfig is one registered webhook endpoint. ServiceTitan webhooks are
// configured in the ServiceTitan portal; this side only hands out the
// receiving endpoint and remembers what event it expects.
type HookConfig struct {
	UID            string
	Event          string
	IncludeRawData bool
	CreatedAt      time.Time
}

type service struct {
	store     mystore.Store[HookConfig]
	publisher mypublisher.Publisher
	nower     mytime.Nower
	uuider    myuuid.UUIDer
	logger    mylog.Logger
}

func newService(store mystore.Store[HookConfig], publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		store:     store,
		publisher: publisher,
		nower:     nower,
		uuider:    uuider,
		logger:    logger,
	}
}

func (s *service) createHook(c context.Context, event string, includeRawData bool) (HookConfig, error) {
	if event == "" {
		return HookConfig{}, myerrors.NewInvalidInputError(fmt.Errorf("missing event"))
	}

	hook := HookConfig{
		UID:            s.uuider.Create(),
		Event:          event,
		IncludeRawData: includeRawData,
		CreatedAt:      s.nower.Now(),
	}

	err := s.store.Put(c, hook.UID, hook)
	if err != nil {
		return HookConfig{}, myerrors.NewInternalError(fmt.Errorf("error storing hook: %s", err))
	}

	s.logger.Log(c, hook.UID, mylog.SeverityInfo, "Created hook %s for event %s", hook.UID, hook.Event)

	return hook, nil
}

func (s *service) getHook(c context.Context, hookUID string) (HookConfig, error) {
	hook, found, err := s.store.Get(c, hookUID)
	if err != nil {
		return HookConfig{}, myerrors.NewInternalError(fmt.Errorf("error fetching hook %s: %s", hookUID, err))
	}
	if !found {
		return HookConfig{}, myerrors.NewNotFoundError(fmt.Errorf("hook with uid %s not found", hookUID))
	}
	return hook, nil
}

func (s *service) listHooks(c context.Context) ([]HookConfig, error) {
	hooks, err := s.store.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error listing hooks: %s", err))
	}
	return hooks, nil
}

func (s *service) deleteHook(c context.Context, hookUID string) error {
	_, err := s.getHook(c, hookUID)
	if err != nil {
		return err
	}

	err = s.store.Remove(c, hookUID)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error removing hook %s: %s", hookUID, err))
	}

	s.logger.Log(c, hookUID, mylog.SeverityInfo, "Removed hook %s", hookUID)

	return nil
}

func (s *service) handleWebhook(c context.Context, hookUID string, body map[string]any, headers http.Header) (map[string]any, error) {
	hook, err := s.getHook(c, hookUID)
	if err != nil {
		return nil, err
	}

	normalized := Normalize(body, headers, hook.Event, hook.IncludeRawData, s.nower.Now())

	eventType, _ := normalized["event"].(string)
	webhookID, _ := normalized["webhookId"].(string)

	err = s.publisher.Publish(c, titanevents.TopicName, titanevents.WebhookReceived{
		HookUID:   hookUID,
		EventType: eventType,
		WebhookID: webhookID,
		Payload:   normalized,
	})
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error publishing webhook event: %s", err))
	}

	s.logger.Log(c, hookUID, mylog.SeverityInfo, "Processed webhook %s with event %s", hookUID, eventType)

	return normalized, nil
}
